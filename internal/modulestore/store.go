// Package modulestore provides lookup of course descriptors by course-run
// key. It stands in for the platform's course-content storage engine, which
// this service only reads through this narrow interface.
package modulestore

import (
	"context"
	"encoding/json"
)

// CourseDescriptor is the slice of course metadata this service reads.
// InstructorInfo holds the raw instructor_info document authored alongside
// the course content; callers decode the parts they understand.
type CourseDescriptor struct {
	Key            string          `json:"key"`
	DisplayName    string          `json:"display_name"`
	InstructorInfo json.RawMessage `json:"instructor_info,omitempty"`
}

// Store answers course descriptor lookups by course-run key.
// A missing course yields (nil, nil), not an error; callers are expected
// to skip absent courses.
type Store interface {
	GetCourse(ctx context.Context, key string) (*CourseDescriptor, error)
	Close() error
}

package catalog

import (
	"context"
	"encoding/json"

	"program-catalog/internal/common/errors"
	"program-catalog/internal/common/logging"
)

// instructorInfo is the instructor_info document stored on course
// descriptors.
type instructorInfo struct {
	Instructors []Instructor `json:"instructors"`
}

// programInstructors returns the unique instructors across all course runs
// referenced by the program. Instructor profile data lives on the course
// descriptors, so results are cached per program UUID to avoid course-store
// lookups on every call. Deduplication is keyed by instructor name; a later
// course run's entry overwrites an earlier one with the same name. Course
// runs without a descriptor are skipped.
func (s *Service) programInstructors(ctx context.Context, program *Program) ([]Instructor, error) {
	cacheKey := "program.instructors." + program.UUID

	if data, ok := s.cache.Get(ctx, cacheKey); ok {
		var cached []Instructor
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// An undecodable entry is recomputed below and overwritten
	}

	byName := make(map[string]Instructor)
	var order []string

	for _, key := range program.CourseRunKeys() {
		descriptor, err := s.courses.GetCourse(ctx, key)
		if err != nil {
			return nil, err
		}
		if descriptor == nil {
			s.logger.Debug("course descriptor missing, skipping",
				logging.String("course_run", key))
			continue
		}

		if len(descriptor.InstructorInfo) == 0 {
			continue
		}

		var info instructorInfo
		if err := json.Unmarshal(descriptor.InstructorInfo, &info); err != nil {
			return nil, errors.InternalError("failed to decode instructor_info", err).
				WithContext("course_run", key)
		}

		for _, instructor := range info.Instructors {
			if _, seen := byName[instructor.Name]; !seen {
				order = append(order, instructor.Name)
			}
			byName[instructor.Name] = instructor
		}
	}

	instructors := make([]Instructor, 0, len(order))
	for _, name := range order {
		instructors = append(instructors, byName[name])
	}

	ttl := s.integration().CacheTTL
	if ttl <= 0 {
		ttl = instructorCacheTTL
	}

	data, err := json.Marshal(instructors)
	if err != nil {
		return nil, errors.InternalError("failed to encode instructors for cache", err)
	}
	if err := s.cache.Set(ctx, cacheKey, data, ttl); err != nil {
		s.logger.Warn("failed to cache program instructors",
			logging.String("key", cacheKey), logging.Err(err))
	}

	return instructors, nil
}

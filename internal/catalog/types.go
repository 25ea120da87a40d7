package catalog

// Records returned by the catalog service. Fields are optional unless the
// serializer always includes them; payloads are treated as immutable
// snapshots once cached, so enrichment always works on deep copies.

// CourseRun is a specific scheduled offering of a course.
type CourseRun struct {
	Key          string `json:"key"`
	Title        string `json:"title,omitempty"`
	MarketingURL string `json:"marketing_url,omitempty"`
}

// Course is a member course of a program.
type Course struct {
	Key        string      `json:"key,omitempty"`
	Title      string      `json:"title,omitempty"`
	CourseRuns []CourseRun `json:"course_runs,omitempty"`
}

// Program is a named bundle of courses offered as a credential track.
// Type holds the program type's name; the full type object is only attached
// by enrichment, on a copy.
type Program struct {
	UUID          string   `json:"uuid"`
	Title         string   `json:"title,omitempty"`
	Subtitle      string   `json:"subtitle,omitempty"`
	MarketingSlug string   `json:"marketing_slug"`
	Type          string   `json:"type,omitempty"`
	Courses       []Course `json:"courses,omitempty"`
}

// ProgramType classifies a program (e.g. a credential tier).
type ProgramType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoImage   string `json:"logo_image,omitempty"`
}

// Instructor is the per-course instructor profile authored in the course
// content. Identity for deduplication is the name.
type Instructor struct {
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
	Image        string `json:"image,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

// EnrichedProgram is a program with its type resolved to the full object
// and its instructor list attached. The outer ProgramType field shadows the
// embedded type name in JSON, so the wire shape replaces "type" with the
// object, matching the catalog service's detail contract.
type EnrichedProgram struct {
	Program
	ProgramType *ProgramType `json:"type"`
	Instructors []Instructor `json:"instructors,omitempty"`
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() Program {
	clone := *p

	if p.Courses != nil {
		clone.Courses = make([]Course, len(p.Courses))
		for i, course := range p.Courses {
			clone.Courses[i] = course
			if course.CourseRuns != nil {
				clone.Courses[i].CourseRuns = make([]CourseRun, len(course.CourseRuns))
				copy(clone.Courses[i].CourseRuns, course.CourseRuns)
			}
		}
	}

	return clone
}

// CourseRunKeys returns the program's course-run keys, deduplicated,
// preserving first-seen order.
func (p *Program) CourseRunKeys() []string {
	seen := make(map[string]struct{})
	var keys []string

	for _, course := range p.Courses {
		for _, run := range course.CourseRuns {
			if run.Key == "" {
				continue
			}
			if _, ok := seen[run.Key]; ok {
				continue
			}
			seen[run.Key] = struct{}{}
			keys = append(keys, run.Key)
		}
	}

	return keys
}

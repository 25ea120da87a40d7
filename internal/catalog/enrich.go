package catalog

import (
	"context"

	"program-catalog/internal/common/errors"
)

// GetProgramsWithType returns the list of programs with each program's type
// resolved to the full type object. includeTypes optionally filters by type
// name; an empty filter returns programs of all types. Program order is
// preserved, and cached program snapshots are never mutated: every returned
// entry wraps a deep copy.
func (s *Service) GetProgramsWithType(ctx context.Context, includeTypes []string) ([]EnrichedProgram, error) {
	programs, err := s.GetPrograms(ctx, "")
	if err != nil {
		return nil, err
	}

	enriched := []EnrichedProgram{}
	if len(programs) == 0 {
		return enriched, nil
	}

	types, err := s.GetProgramTypes(ctx)
	if err != nil {
		return nil, err
	}

	typesByName := make(map[string]ProgramType, len(types))
	for _, t := range types {
		typesByName[t.Name] = t
	}

	included := make(map[string]struct{}, len(includeTypes))
	for _, name := range includeTypes {
		included[name] = struct{}{}
	}

	for i := range programs {
		if len(included) > 0 {
			if _, ok := included[programs[i].Type]; !ok {
				continue
			}
		}

		programType, ok := typesByName[programs[i].Type]
		if !ok {
			return nil, errors.NotFoundError("program type").
				WithContext("name", programs[i].Type).
				WithContext("program", programs[i].UUID)
		}

		enriched = append(enriched, EnrichedProgram{
			Program:     programs[i].Clone(),
			ProgramType: &programType,
		})
	}

	return enriched, nil
}

// GetProgramWithTypeAndInstructors returns the program with the given
// marketing slug, with full program type data and instructor info attached.
// It returns nil when no program matches the slug. The matching program is
// re-fetched by UUID because the list serializer excludes data the detail
// view needs.
func (s *Service) GetProgramWithTypeAndInstructors(ctx context.Context, marketingSlug string) (*EnrichedProgram, error) {
	programs, err := s.GetPrograms(ctx, "")
	if err != nil {
		return nil, err
	}

	var match *Program
	for i := range programs {
		if programs[i].MarketingSlug == marketingSlug {
			match = &programs[i]
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	full, err := s.GetProgram(ctx, match.UUID)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, nil
	}

	programType, err := s.GetProgramType(ctx, full.Type)
	if err != nil {
		return nil, err
	}

	instructors, err := s.programInstructors(ctx, full)
	if err != nil {
		return nil, err
	}

	return &EnrichedProgram{
		Program:     full.Clone(),
		ProgramType: programType,
		Instructors: instructors,
	}, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"net/url"

	"program-catalog/internal/common/errors"
)

// GetPrograms retrieves marketable programs from the catalog service,
// optionally filtered by program type. It returns an empty list, without
// touching the network or the cache, when the integration is disabled or
// the service user is missing.
func (s *Service) GetPrograms(ctx context.Context, programType string) ([]Program, error) {
	client, integration, err := s.apiClient(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []Program{}, nil
	}

	cacheKey := ""
	if integration.IsCacheEnabled() {
		cacheKey = integration.CacheKeyPrefix + ".programs"
		if programType != "" {
			cacheKey = cacheKey + "." + programType
		}
	}

	query := url.Values{}
	query.Set("marketable", "1")
	query.Set("exclude_utm", "1")
	if programType != "" {
		query.Set("type", programType)
	}

	data, err := s.getAPIData(ctx, client, integration, "programs", "", query, cacheKey)
	if err != nil {
		return nil, err
	}

	var programs []Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, errors.InternalError("failed to decode programs payload", err)
	}
	if programs == nil {
		programs = []Program{}
	}

	return programs, nil
}

// GetProgram retrieves a single program by UUID, using the catalog
// service's full course serializer. It returns nil when the integration is
// disabled or the service user is missing.
func (s *Service) GetProgram(ctx context.Context, uuid string) (*Program, error) {
	client, integration, err := s.apiClient(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	cacheKey := ""
	if integration.IsCacheEnabled() {
		cacheKey = integration.CacheKeyPrefix + ".programs"
	}

	query := url.Values{}
	query.Set("marketable", "1")
	query.Set("exclude_utm", "1")
	query.Set("use_full_course_serializer", "1")

	data, err := s.getAPIData(ctx, client, integration, "programs", uuid, query, cacheKey)
	if err != nil {
		return nil, err
	}

	program := &Program{}
	if err := json.Unmarshal(data, program); err != nil {
		return nil, errors.InternalError("failed to decode program payload", err)
	}

	return program, nil
}

// GetProgramTypes retrieves all program types from the catalog service.
func (s *Service) GetProgramTypes(ctx context.Context) ([]ProgramType, error) {
	client, integration, err := s.apiClient(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []ProgramType{}, nil
	}

	cacheKey := ""
	if integration.IsCacheEnabled() {
		cacheKey = integration.CacheKeyPrefix + ".program_types"
	}

	data, err := s.getAPIData(ctx, client, integration, "program_types", "", nil, cacheKey)
	if err != nil {
		return nil, err
	}

	var types []ProgramType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, errors.InternalError("failed to decode program types payload", err)
	}
	if types == nil {
		types = []ProgramType{}
	}

	return types, nil
}

// GetProgramType retrieves the first program type with the given name.
// A not_found typed error is returned when no type matches; callers must
// treat this as a lookup failure.
func (s *Service) GetProgramType(ctx context.Context, name string) (*ProgramType, error) {
	types, err := s.GetProgramTypes(ctx)
	if err != nil {
		return nil, err
	}

	for i := range types {
		if types[i].Name == name {
			return &types[i], nil
		}
	}

	return nil, errors.NotFoundError("program type").WithContext("name", name)
}

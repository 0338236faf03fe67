package services

import (
	"context"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/models/dtos"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

var crewCacheKey = string(constants.CachePrefixCrew) + "ALL"

type CrewService struct {
	repo  *repositories.CrewRepository
	cache *ListCache
}

func NewCrewService(repo *repositories.CrewRepository, cache *ListCache) *CrewService {
	return &CrewService{repo: repo, cache: cache}
}

func (s *CrewService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.CrewView], error) {
	all, err := cachedList(s.cache, crewCacheKey, func() ([]dtos.CrewView, error) {
		members, _, err := s.repo.List(ctx, repositories.ListOptions{})
		if err != nil {
			return nil, err
		}
		views := make([]dtos.CrewView, 0, len(members))
		for _, m := range members {
			views = append(views, dtos.NewCrewView(m))
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return pageOf(page, all), nil
}

func (s *CrewService) Get(ctx context.Context, id uint) (*dtos.CrewView, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dtos.NewCrewView(*member)
	return &view, nil
}

func (s *CrewService) Create(ctx context.Context, req dtos.CrewRequest) (*dtos.CrewView, error) {
	member := gormModels.Crew{}
	if err := applyCrew(&member, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}
	s.cache.invalidate(crewCacheKey)

	view := dtos.NewCrewView(member)
	return &view, nil
}

func (s *CrewService) Update(ctx context.Context, id uint, req dtos.CrewRequest) (*dtos.CrewView, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCrew(member, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.cache.invalidate(crewCacheKey)

	view := dtos.NewCrewView(*member)
	return &view, nil
}

// Delete removes the member from every flight roster first
func (s *CrewService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(crewCacheKey)
	return nil
}

func applyCrew(member *gormModels.Crew, req dtos.CrewRequest) error {
	f := fieldErrors{}
	first := requireText(f, "first_name", req.FirstName, maxNameLength)
	last := requireText(f, "last_name", req.LastName, maxNameLength)
	if err := f.err(); err != nil {
		return err
	}
	member.FirstName = first
	member.LastName = last
	return nil
}

package services

import (
	"context"
	"errors"

	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/models/dtos"
	gormModels "airport-booking/skyport/internal/models/gorm"
)

var airplaneTypesCacheKey = string(constants.CachePrefixAirplaneTypes) + "ALL"

type AirplaneTypeService struct {
	repo  *repositories.AirplaneTypeRepository
	cache *ListCache
}

func NewAirplaneTypeService(repo *repositories.AirplaneTypeRepository, cache *ListCache) *AirplaneTypeService {
	return &AirplaneTypeService{repo: repo, cache: cache}
}

func (s *AirplaneTypeService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.AirplaneTypeView], error) {
	all, err := cachedList(s.cache, airplaneTypesCacheKey, func() ([]dtos.AirplaneTypeView, error) {
		types, _, err := s.repo.List(ctx, repositories.ListOptions{})
		if err != nil {
			return nil, err
		}
		views := make([]dtos.AirplaneTypeView, 0, len(types))
		for _, t := range types {
			views = append(views, dtos.NewAirplaneTypeView(t))
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return pageOf(page, all), nil
}

func (s *AirplaneTypeService) Get(ctx context.Context, id uint) (*dtos.AirplaneTypeView, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dtos.NewAirplaneTypeView(*t)
	return &view, nil
}

func (s *AirplaneTypeService) Create(ctx context.Context, req dtos.AirplaneTypeRequest) (*dtos.AirplaneTypeView, error) {
	f := fieldErrors{}
	name := requireText(f, "name", req.Name, maxNameLength)
	if err := f.err(); err != nil {
		return nil, err
	}

	t := gormModels.AirplaneType{Name: name}
	if err := s.repo.Create(ctx, &t); err != nil {
		return nil, translateWriteError(err)
	}
	s.cache.invalidate(airplaneTypesCacheKey)

	view := dtos.NewAirplaneTypeView(t)
	return &view, nil
}

func (s *AirplaneTypeService) Update(ctx context.Context, id uint, req dtos.AirplaneTypeRequest) (*dtos.AirplaneTypeView, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f := fieldErrors{}
	t.Name = requireText(f, "name", req.Name, maxNameLength)
	if err := f.err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, translateWriteError(err)
	}
	s.cache.invalidate(airplaneTypesCacheKey)

	view := dtos.NewAirplaneTypeView(*t)
	return &view, nil
}

func (s *AirplaneTypeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(airplaneTypesCacheKey)
	return nil
}

type AirplaneService struct {
	repo  *repositories.AirplaneRepository
	types *repositories.AirplaneTypeRepository
}

func NewAirplaneService(repo *repositories.AirplaneRepository, types *repositories.AirplaneTypeRepository) *AirplaneService {
	return &AirplaneService{repo: repo, types: types}
}

func (s *AirplaneService) List(ctx context.Context, page Pagination) (*dtos.Page[dtos.AirplaneView], error) {
	airplanes, total, err := s.repo.List(ctx, page.ListOptions())
	if err != nil {
		return nil, err
	}
	items := make([]dtos.AirplaneView, 0, len(airplanes))
	for _, a := range airplanes {
		items = append(items, dtos.NewAirplaneView(a))
	}
	return newPage(page, items, total), nil
}

func (s *AirplaneService) Get(ctx context.Context, id uint) (*dtos.AirplaneView, error) {
	airplane, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := dtos.NewAirplaneView(*airplane)
	return &view, nil
}

func (s *AirplaneService) Create(ctx context.Context, req dtos.AirplaneRequest) (*dtos.AirplaneView, error) {
	airplane := gormModels.Airplane{}
	if err := s.apply(ctx, &airplane, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &airplane); err != nil {
		return nil, translateWriteError(err)
	}

	logging.Info("Airplane created", "airplane_id", airplane.ID, "capacity", airplane.Capacity())
	view := dtos.NewAirplaneView(airplane)
	return &view, nil
}

// Update may change the cabin geometry; seats already sold outside the new bounds are kept
func (s *AirplaneService) Update(ctx context.Context, id uint, req dtos.AirplaneRequest) (*dtos.AirplaneView, error) {
	airplane, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, airplane, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, airplane); err != nil {
		return nil, translateWriteError(err)
	}

	view := dtos.NewAirplaneView(*airplane)
	return &view, nil
}

func (s *AirplaneService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// apply validates the request and resolves the airplane type by name
func (s *AirplaneService) apply(ctx context.Context, airplane *gormModels.Airplane, req dtos.AirplaneRequest) error {
	f := fieldErrors{}
	name := requireText(f, "name", req.Name, maxNameLength)
	requirePositive(f, "rows", req.Rows)
	requirePositive(f, "seats_in_row", req.SeatsInRow)
	typeName := requireText(f, "airplane_type", req.AirplaneType, maxNameLength)

	var airplaneType *gormModels.AirplaneType
	if typeName != "" {
		t, err := s.types.FindByName(ctx, typeName)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			f.add("airplane_type", constants.MsgUnknownReference)
		case err != nil:
			return err
		default:
			airplaneType = t
		}
	}
	if err := f.err(); err != nil {
		return err
	}

	airplane.Name = name
	airplane.Rows = req.Rows
	airplane.SeatsInRow = req.SeatsInRow
	airplane.AirplaneTypeID = airplaneType.ID
	airplane.AirplaneType = *airplaneType
	return nil
}

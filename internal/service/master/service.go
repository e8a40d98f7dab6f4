package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/fixtures"
)

type MasterService interface {
	// Location operations
	CreateLocation(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error)
	GetLocation(ctx context.Context, cityName string) (location.LocationResponse, error)
	ListLocations(ctx context.Context) ([]location.LocationResponse, error)
	UpdateLocation(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error)
	DeleteLocation(ctx context.Context, cityName string) error

	// SeedDefaults fills an empty registry with the default stores.
	SeedDefaults(ctx context.Context) ([]location.LocationResponse, error)

	// Registry returns a snapshot of every location for calculations.
	Registry(ctx context.Context) (location.Registry, error)
}

// TxRunner opens a transaction carried by the returned context.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CityUsage counts the work days that reference a city.
type CityUsage interface {
	CountByCityName(ctx context.Context, cityName string) (int, error)
}

type masterServiceImpl struct {
	locationRepo location.LocationRepository
	usage        CityUsage
	tx           TxRunner
}

func NewMasterService(
	locationRepo location.LocationRepository,
	usage CityUsage,
	tx TxRunner,
) MasterService {
	return &masterServiceImpl{
		locationRepo: locationRepo,
		usage:        usage,
		tx:           tx,
	}
}

// ==================== LOCATION OPERATIONS ====================

func (s *masterServiceImpl) CreateLocation(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	entity := location.Location{
		CityName:           strings.TrimSpace(req.CityName),
		DistanceKm:         req.DistanceKm,
		TravelTimeMinutes:  req.TravelTimeMinutes,
		Address:            req.Address,
		DefaultArrivalTime: req.DefaultArrivalTime,
	}

	created, err := s.locationRepo.Create(ctx, entity)
	if err != nil {
		if isUniqueViolation(err) {
			return location.LocationResponse{}, location.ErrCityNameExists
		}
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return location.NewLocationResponse(created), nil
}

func (s *masterServiceImpl) GetLocation(ctx context.Context, cityName string) (location.LocationResponse, error) {
	entity, err := s.locationRepo.GetByCityName(ctx, cityName)
	if err != nil {
		return location.LocationResponse{}, err
	}
	return location.NewLocationResponse(entity), nil
}

func (s *masterServiceImpl) ListLocations(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, location.NewLocationResponse(l))
	}
	return responses, nil
}

// UpdateLocation refuses to rename a city that stored work days still
// reference, since days keep the city by name.
func (s *masterServiceImpl) UpdateLocation(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}
	if req.NewCityName != nil {
		trimmed := strings.TrimSpace(*req.NewCityName)
		req.NewCityName = &trimmed
	}

	var updated location.Location
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.locationRepo.GetByCityNameForUpdate(txCtx, req.CityName)
		if err != nil {
			return err
		}

		if req.NewCityName != nil && location.NormalizeName(*req.NewCityName) != location.NormalizeName(current.CityName) {
			if err := s.ensureUnused(txCtx, current.CityName); err != nil {
				return err
			}
		}

		updated, err = s.locationRepo.Update(txCtx, req)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return location.LocationResponse{}, location.ErrCityNameExists
		}
		return location.LocationResponse{}, err
	}

	return location.NewLocationResponse(updated), nil
}

func (s *masterServiceImpl) DeleteLocation(ctx context.Context, cityName string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entity, err := s.locationRepo.GetByCityNameForUpdate(txCtx, cityName)
		if err != nil {
			return err
		}

		if err := s.ensureUnused(txCtx, entity.CityName); err != nil {
			return err
		}

		return s.locationRepo.Delete(txCtx, entity.CityName)
	})
}

func (s *masterServiceImpl) ensureUnused(ctx context.Context, cityName string) error {
	used, err := s.usage.CountByCityName(ctx, cityName)
	if err != nil {
		return fmt.Errorf("failed to count work days for %s: %w", cityName, err)
	}
	if used > 0 {
		return fmt.Errorf("%w: %d days in %s", location.ErrLocationInUse, used, cityName)
	}
	return nil
}

func (s *masterServiceImpl) SeedDefaults(ctx context.Context) ([]location.LocationResponse, error) {
	var seeded []location.Location

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.locationRepo.List(txCtx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return location.ErrRegistryNotEmpty
		}

		for _, l := range fixtures.DefaultLocations() {
			created, err := s.locationRepo.Create(txCtx, l)
			if err != nil {
				return fmt.Errorf("failed to seed location %s: %w", l.CityName, err)
			}
			seeded = append(seeded, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Seeded default locations", "count", len(seeded))

	responses := make([]location.LocationResponse, 0, len(seeded))
	for _, l := range seeded {
		responses = append(responses, location.NewLocationResponse(l))
	}
	return responses, nil
}

func (s *masterServiceImpl) Registry(ctx context.Context) (location.Registry, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return location.Registry{}, fmt.Errorf("failed to load locations: %w", err)
	}
	return location.NewRegistry(locations), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chords-academy/chords-crm-backend/internal/config"
	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrUnknownPackage is returned when a plan name is not in the catalog.
var ErrUnknownPackage = errors.New("unknown package")

// PackageService serves the billing-tier and instrument catalogs. The
// package catalog is read on every registration and renewal, so it is
// cached in Redis and prewarmed at startup; writes invalidate.
type PackageService struct {
	packageRepo    *repository.PackageRepository
	instrumentRepo *repository.InstrumentRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewPackageService creates a new PackageService.
func NewPackageService(packageRepo *repository.PackageRepository, instrumentRepo *repository.InstrumentRepository, rdb *redis.Client, log zerolog.Logger) *PackageService {
	return &PackageService{
		packageRepo:    packageRepo,
		instrumentRepo: instrumentRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "package_service").Logger(),
	}
}

// GetByName resolves a plan name against the catalog, Redis first.
func (s *PackageService) GetByName(ctx context.Context, name string) (*model.Package, error) {
	key := config.CacheKey.PackageKey(name)
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var p model.Package
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	}

	p, err := s.packageRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownPackage
		}
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		// Best-effort; a cold cache just means the next lookup hits Postgres.
		_ = s.rdb.Set(ctx, key, data, 0).Err()
	}
	return p, nil
}

// ListPackages returns the active catalog, Redis first.
func (s *PackageService) ListPackages(ctx context.Context) ([]model.Package, error) {
	key := config.CacheKey.PackageCatalogKey()
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var packages []model.Package
		if err := json.Unmarshal(data, &packages); err == nil {
			return packages, nil
		}
	}

	packages, err := s.packageRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []model.Package{}
	}

	if data, err := json.Marshal(packages); err == nil {
		_ = s.rdb.Set(ctx, key, data, 0).Err()
	}
	return packages, nil
}

// CreatePackage adds a billing tier and invalidates the catalog cache.
func (s *PackageService) CreatePackage(ctx context.Context, req *model.CreatePackageRequest) (*model.Package, error) {
	p := &model.Package{
		Name:         req.Name,
		TotalClasses: req.TotalClasses,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	}
	if err := s.packageRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.Name)
	return p, nil
}

// DeactivatePackage retires a billing tier from the catalog.
func (s *PackageService) DeactivatePackage(ctx context.Context, name string) error {
	if err := s.packageRepo.Deactivate(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

// PrewarmCatalog loads the package catalog into Redis at startup so the
// first registration of the day never lazy-loads, and logs what it found.
func (s *PackageService) PrewarmCatalog(ctx context.Context) error {
	packages, err := s.packageRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list packages: %w", err)
	}

	pipe := s.rdb.Pipeline()
	if data, err := json.Marshal(packages); err == nil {
		pipe.Set(ctx, config.CacheKey.PackageCatalogKey(), data, 0)
	}
	for i := range packages {
		data, err := json.Marshal(&packages[i])
		if err != nil {
			continue
		}
		pipe.Set(ctx, config.CacheKey.PackageKey(packages[i].Name), data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Info().Int("count", len(packages)).Msg("Package catalog prewarmed")
	return nil
}

func (s *PackageService) invalidate(ctx context.Context, name string) {
	if err := s.rdb.Del(ctx, config.CacheKey.PackageCatalogKey(), config.CacheKey.PackageKey(name)).Err(); err != nil {
		s.log.Warn().Err(err).Str("package", name).Msg("Cache invalidation failed")
	}
}

// ListInstruments returns the active instruments catalog.
func (s *PackageService) ListInstruments(ctx context.Context) ([]model.Instrument, error) {
	instruments, err := s.instrumentRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if instruments == nil {
		instruments = []model.Instrument{}
	}
	return instruments, nil
}

// CreateInstrument adds an instrument to the catalog.
func (s *PackageService) CreateInstrument(ctx context.Context, req *model.CreateInstrumentRequest) (*model.Instrument, error) {
	i := &model.Instrument{Name: req.Name, Emoji: req.Emoji}
	if err := s.instrumentRepo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// DeactivateInstrument retires an instrument from the catalog.
func (s *PackageService) DeactivateInstrument(ctx context.Context, name string) error {
	return s.instrumentRepo.Deactivate(ctx, name)
}

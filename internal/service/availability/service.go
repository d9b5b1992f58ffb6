package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	engine "github.com/turnomed/scheduling-api/internal/availability"
	"github.com/turnomed/scheduling-api/internal/model"
	"github.com/turnomed/scheduling-api/internal/repository"
)

type Config struct {
	SlotCacheSize int
	SlotCacheTTL  time.Duration
	SettingsTTL   time.Duration
}

func DefaultConfig() Config {
	return Config{
		SlotCacheSize: 4096,
		SlotCacheTTL:  time.Minute,
		SettingsTTL:   5 * time.Minute,
	}
}

// Service answers availability queries. It assembles a snapshot of the
// doctor's scheduling configuration, runs the pure engine over it and
// marks slots taken by existing appointments. Candidate grids are cached
// per (doctor, date); occupancy is never cached.
type Service struct {
	engine        *engine.Engine
	scheduleRepo  repository.ScheduleRepository
	settingsRepo  repository.SettingsRepository
	exceptionRepo repository.ExceptionRepository
	apptRepo      repository.AppointmentRepository

	slots         *slotCache
	settingsCache *gocache.Cache
}

func NewService(
	eng *engine.Engine,
	scheduleRepo repository.ScheduleRepository,
	settingsRepo repository.SettingsRepository,
	exceptionRepo repository.ExceptionRepository,
	apptRepo repository.AppointmentRepository,
	cfg Config,
) *Service {
	return &Service{
		engine:        eng,
		scheduleRepo:  scheduleRepo,
		settingsRepo:  settingsRepo,
		exceptionRepo: exceptionRepo,
		apptRepo:      apptRepo,
		slots:         newSlotCache(cfg.SlotCacheSize, cfg.SlotCacheTTL),
		settingsCache: gocache.New(cfg.SettingsTTL, 2*cfg.SettingsTTL),
	}
}

// GetAvailableSlots computes the bookable slots for a doctor on a date.
func (s *Service) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date model.Date) (*model.AvailableSlots, error) {
	grid, err := s.candidateGrid(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	appointments, err := s.apptRepo.ListForDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing appointments: %w", err)
	}

	result := &model.AvailableSlots{
		DoctorID:       doctorID,
		Date:           date,
		AvailableSlots: engine.MarkOccupied(grid.slots, appointments),
	}
	if result.AvailableSlots == nil {
		result.AvailableSlots = []model.TimeSlot{}
	}
	return result, nil
}

func (s *Service) candidateGrid(ctx context.Context, doctorID uuid.UUID, date model.Date) (cachedGrid, error) {
	if grid, ok := s.slots.get(doctorID, date); ok {
		return grid, nil
	}

	settings, err := s.getSettings(ctx, doctorID)
	if err != nil {
		return cachedGrid{}, err
	}

	entries, err := s.scheduleRepo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return cachedGrid{}, fmt.Errorf("failed to load weekly schedule: %w", err)
	}

	exceptions, err := s.exceptionRepo.ListForDate(ctx, doctorID, date)
	if err != nil {
		return cachedGrid{}, fmt.Errorf("failed to load exceptions: %w", err)
	}

	candidates, resolution, err := s.engine.CandidateSlots(engine.ComputeInput{
		DoctorID:   doctorID,
		Date:       date,
		Entries:    entries,
		Settings:   settings,
		Exceptions: exceptions,
	})
	if err != nil {
		return cachedGrid{}, err
	}

	if resolution != engine.ResolutionNone {
		log.Info().
			Str("doctor_id", doctorID.String()).
			Str("date", date.String()).
			Str("resolution", string(resolution)).
			Msg("availability derived from exception override")
	}

	grid := cachedGrid{slots: candidates, resolution: resolution}
	s.slots.set(doctorID, date, grid)
	return grid, nil
}

func (s *Service) getSettings(ctx context.Context, doctorID uuid.UUID) (*model.DoctorSettings, error) {
	key := doctorID.String()
	if cached, ok := s.settingsCache.Get(key); ok {
		return cached.(*model.DoctorSettings), nil
	}

	settings, err := s.settingsRepo.GetForDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &engine.ConfigurationError{Msg: fmt.Sprintf("doctor %s has no scheduling settings", doctorID)}
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s.settingsCache.SetDefault(key, settings)
	return settings, nil
}

// InvalidateDoctor drops all cached state for a doctor. The schedule
// service calls this after every mutation.
func (s *Service) InvalidateDoctor(doctorID uuid.UUID) {
	s.slots.invalidate(doctorID)
	s.settingsCache.Delete(doctorID.String())
}

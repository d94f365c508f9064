package app

import (
	"context"
	"fmt"

	"github.com/campusplan/timegrid/config"
	"github.com/campusplan/timegrid/core/schedule"
	"github.com/campusplan/timegrid/core/schedule/logging"
	"github.com/campusplan/timegrid/core/timegrid"
	"github.com/campusplan/timegrid/infra/ingest"
	"github.com/campusplan/timegrid/infra/logger"
	"github.com/campusplan/timegrid/infra/report"
	"github.com/campusplan/timegrid/internal/eventbus"
	"github.com/campusplan/timegrid/metrics"
)

// Service orchestrates one timetable generation: ingest the course offerings,
// run the scheduler, write the workbook and persist outcomes.
type Service struct {
	cfg     *config.Config
	cal     *timegrid.Calendar
	manager *schedule.Manager
	loader  *ingest.Loader
	writer  *report.Writer
	store   logging.Store
	bus     eventbus.EventBus
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	cal, err := timegrid.NewCalendar(cfg.Calendar)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	bus := eventbus.New()
	manager, err := schedule.NewManager(cal, cfg.Schedule, logger.New("schedule"), bus)
	if err != nil {
		return nil, fmt.Errorf("schedule manager: %w", err)
	}
	store, err := newStore(cfg.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("outcome store: %w", err)
	}
	if store != nil {
		manager.SetOutcomeStore(store)
	}
	return &Service{
		cfg:     cfg,
		cal:     cal,
		manager: manager,
		loader:  ingest.New(logger.New("ingest")),
		writer:  report.NewWriter(cal, logger.New("report")),
		store:   store,
		bus:     bus,
		log:     logg,
	}, nil
}

func newStore(cfg config.OutcomesConfig) (logging.Store, error) {
	switch cfg.Backend {
	case "jsonl":
		return logging.NewJSONLStore(cfg.Path)
	case "sqlite":
		return logging.NewSQLiteStore(cfg.Path)
	default:
		return nil, nil
	}
}

// Run executes one generation and blocks until it is written out.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus)
	if s.cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(ctx, s.cfg.Metrics.Addr, s.log); err != nil {
				s.log.Errorf("metrics server: %v", err)
			}
		}()
	}
	courses, err := s.loader.Load(s.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	result, err := s.manager.Run(ctx, courses)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	s.log.Infof("run %s: %d/%d sessions scheduled (%.1f%%)",
		result.RunID, result.Stats.Scheduled, result.Stats.TotalSessions,
		result.Stats.SuccessRate())
	if err := s.writer.Save(result, s.cfg.OutputPath); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

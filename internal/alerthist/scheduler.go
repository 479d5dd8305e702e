package alerthist

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"alertd/internal/alerthist/interfaces"
	"alertd/internal/models"
	"alertd/internal/providers"
	"alertd/internal/structures"
)

// Scheduler runs the periodic background jobs: a safety-net snapshot save
// (mutations already persist synchronously) and daily-counter pruning so
// the counter map cannot grow without bound across long uptimes.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	store       *models.AlertStore
	fileManager FileManagerInterface
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval
	retention := s.config.Alerts.CounterRetentionDays

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	if retention > 0 {
		s.cron.AddFunc(gron.Every(1*time.Hour), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if removed := s.store.PruneCounters(time.Now(), retention); removed > 0 {
				s.logger.Infof(providers.TypeApp, "Pruned %d stale daily counters", removed)
			}
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting alert history to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store *models.AlertStore, fileManager FileManagerInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		store:       store,
		fileManager: fileManager,
		metrics:     metrics,
	}
}

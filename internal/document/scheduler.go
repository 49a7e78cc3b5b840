package document

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"stagehand/internal/document/interfaces"
	"stagehand/internal/providers"
	"stagehand/internal/services"
	"stagehand/internal/structures"
)

// Scheduler runs the periodic jobs around the document: a safety persist
// (every mutation already saves synchronously; this catches a db file that
// was deleted or replaced underneath a running server) and archive pruning.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.DocumentServiceInterface
	archive *SceneArchive
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	saveInterval := s.config.Persistence.SaveInterval
	pruneInterval := s.config.SceneArchive.PruneInterval

	s.cron.AddFunc(gron.Every(saveInterval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.service.Persist(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting document: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted document to file %s", s.config.Persistence.FilePath)
	})

	if pruneInterval > 0 {
		s.cron.AddFunc(gron.Every(pruneInterval*time.Second), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if removed := s.archive.Prune(); removed > 0 {
				s.logger.Infof(providers.TypeApp, "Pruned %d archived scenes", removed)
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
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting document to file...")
	if err := s.service.Persist(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting document: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.DocumentServiceInterface, archive *SceneArchive) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		archive: archive,
	}
}

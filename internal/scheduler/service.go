package scheduler

import (
	"github.com/csaugo/analisevoc/internal/cache"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service periodically sweeps expired entries out of the fetch caches.
// Lookups already ignore stale entries, so the sweep only reclaims
// memory for queries that never repeat.
type Service struct {
	schedule string
	caches   []*cache.Cache
	cron     *cron.Cron
}

// NewService creates a scheduler that sweeps the given caches on the
// cron schedule from configuration
func NewService(schedule string, caches ...*cache.Cache) *Service {
	return &Service{
		schedule: schedule,
		caches:   caches,
		cron:     cron.New(),
	}
}

// Start begins the scheduled sweeps
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		removed := 0
		for _, c := range s.caches {
			removed += c.Sweep()
		}
		if removed > 0 {
			logrus.Infof("Cache sweep removed %d expired entries", removed)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Cache sweep scheduler started (%s)", s.schedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Cache sweep scheduler stopped")
	}
}

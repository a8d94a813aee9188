package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/spellnet/internal/infrastructure/config"
)

// Exporter writes a snapshot of the word bank into a directory.
type Exporter interface {
	ExportToDir(ctx context.Context, dir string) (string, error)
}

// Scheduler runs the periodic CSV export.
type Scheduler struct {
	scheduler *gocron.Scheduler
	exporter  Exporter
	logger    logrus.FieldLogger
	dir       string
	interval  time.Duration
	timeout   time.Duration
}

// New creates a scheduler for the configured export job. Start is a no-op
// when the interval is zero.
func New(cfg *config.Config, exporter Exporter, logger *logrus.Logger) *Scheduler {
	timeout := cfg.Export.ScheduleInterval
	if timeout <= 0 || timeout > 5*time.Minute {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		exporter:  exporter,
		logger:    logger.WithField("job", "word_export"),
		dir:       cfg.Export.Dir,
		interval:  cfg.Export.ScheduleInterval,
		timeout:   timeout,
	}
}

// Enabled reports whether an export interval is configured.
func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Start schedules the export job and runs the scheduler in the background.
// The first snapshot is taken one interval after start.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.exportSnapshot); err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.WithFields(logrus.Fields{"interval": s.interval, "dir": s.dir}).Info("scheduled word export")
	return nil
}

// Stop terminates the scheduled job.
func (s *Scheduler) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) exportSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	path, err := s.exporter.ExportToDir(ctx, s.dir)
	if err != nil {
		s.logger.WithError(err).Error("scheduled export failed")
		return
	}
	s.logger.WithField("path", path).Info("scheduled export written")
}

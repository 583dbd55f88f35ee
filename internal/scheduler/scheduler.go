package scheduler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/config"
)

const (
	reportTimeout = 2 * time.Minute
	backupTimeout = 10 * time.Minute
)

// Reporter renders the weekly summary.
type Reporter interface {
	GenerateWeeklyReport(ctx context.Context, now time.Time) (string, error)
}

// Notifier delivers a text message to one recipient.
type Notifier interface {
	Notify(ctx context.Context, to, body string) error
}

// BackupRunner snapshots the record namespaces.
type BackupRunner interface {
	Run(ctx context.Context) ([]string, error)
}

// Jobs groups the optional collaborators. A job is only scheduled when its
// collaborators are present.
type Jobs struct {
	Reporter Reporter
	Notifier Notifier
	Backup   BackupRunner
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.Config, jobs Jobs, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		jobs:   jobs,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}, nil
}

// Start registers the enabled jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.jobs.Reporter != nil && s.jobs.Notifier != nil && s.cfg.WhatsApp.ManagerID != "" {
		if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendWeeklyReport); err != nil {
			return fmt.Errorf("schedule weekly report %q: %w", s.cfg.Reporting.CronSchedule, err)
		}
		s.logger.Info("weekly report scheduled", zap.String("schedule", s.cfg.Reporting.CronSchedule))
	}

	if s.jobs.Backup != nil {
		if _, err := s.cron.AddFunc(s.cfg.Backup.CronSchedule, s.runBackup); err != nil {
			return fmt.Errorf("schedule backup %q: %w", s.cfg.Backup.CronSchedule, err)
		}
		s.logger.Info("backup scheduled", zap.String("schedule", s.cfg.Backup.CronSchedule))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) sendWeeklyReport() {
	s.logger.Info("generating weekly report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report, err := s.jobs.Reporter.GenerateWeeklyReport(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to generate weekly report", zap.Error(err))
		return
	}

	if err := s.jobs.Notifier.Notify(ctx, s.cfg.WhatsApp.ManagerID, report); err != nil {
		s.logger.Error("failed to send weekly report", zap.Error(err))
	} else {
		s.logger.Info("weekly report sent successfully")
	}
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	keys, err := s.jobs.Backup.Run(ctx)
	if err != nil {
		s.logger.Error("backup incomplete", zap.Error(err), zap.Strings("written", keys))
		return
	}
	s.logger.Info("backup finished", zap.Int("objects", len(keys)))
}

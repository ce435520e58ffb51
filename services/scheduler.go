package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/andrey156p/taskflow/config"
)

// Scheduler fires the weekly report on a cron cadence in the configured
// timezone. A failed run is logged and forgotten: no retry, no backfill.
type Scheduler struct {
	tasks  *TaskService
	report *ReportService
	mail   *MailService
	conf   config.Config
	cron   *cron.Cron
}

func NewScheduler(tasks *TaskService, report *ReportService, mail *MailService, conf config.Config) *Scheduler {
	return &Scheduler{
		tasks:  tasks,
		report: report,
		mail:   mail,
		conf:   conf,
	}
}

// Start registers the weekly job and launches the cron loop. Startup errors
// (bad timezone, bad cron expression) are returned so main can decide; a
// report-less server is still a working server.
func (s *Scheduler) Start() error {
	loc, err := time.LoadLocation(s.conf.ReportTimezone)
	if err != nil {
		return err
	}

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.conf.ReportCron, s.runOnce); err != nil {
		return err
	}

	s.cron.Start()
	config.Logger.Infow("weekly report scheduler started",
		"cron", s.conf.ReportCron,
		"timezone", s.conf.ReportTimezone,
		"mailEnabled", s.mail.Enabled(),
	)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// runOnce generates and mails one report. Every failure path logs and
// returns; a missed week is not made up later.
func (s *Scheduler) runOnce() {
	if !s.mail.Enabled() {
		config.Logger.Infow("weekly report skipped, mail not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		config.Logger.Errorw("weekly report skipped, listing tasks failed", "error", err)
		return
	}

	report, err := s.report.Generate(tasks)
	if err != nil {
		config.Logger.Errorw("weekly report skipped, generation failed", "error", err)
		return
	}

	filename := DatedFilename(time.Now())
	if err := s.mail.SendReport(report, filename); err != nil {
		config.Logger.Errorw("weekly report skipped, send failed", "error", err)
		return
	}

	config.Logger.Infow("weekly report sent", "filename", filename, "tasks", len(tasks))
}

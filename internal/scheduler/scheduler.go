// Package scheduler runs the board's periodic jobs on cron schedules in the
// player's time zone.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler owns a cron runner and the jobs registered on it by name.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	loc    *time.Location
	jobs   map[string]cron.EntryID
	logger *slog.Logger
}

func New(loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		loc:    loc,
		jobs:   make(map[string]cron.EntryID),
		logger: logger,
	}
}

// Add registers fn under name with a standard five-field spec or a
// descriptor such as "@every 10m".
func (s *Scheduler) Add(name, spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %q already scheduled", name)
	}
	id, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		fn()
		s.logger.Debug("job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule %q (%s): %w", name, spec, err)
	}
	s.jobs[name] = id
	s.logger.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

// Next returns the next run time of the named job after t.
func (s *Scheduler) Next(name string, t time.Time) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Schedule.Next(t.In(s.loc)), true
}

// Run executes the named job once, outside its schedule.
func (s *Scheduler) Run(name string) bool {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.cron.Entry(id).WrappedJob.Run()
	return true
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the runner and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrJobNotFound   = errors.New("cron job not found")
	ErrJobRunning    = errors.New("cron job is already running")
	ErrDuplicateName = errors.New("cron job already registered")
)

// Job is a named unit of batch work fired by a Trigger.
type Job struct {
	Name    string
	Trigger Trigger
	Fn      func(ctx context.Context) error

	running sync.Mutex
}

// Scheduler runs jobs at their trigger times. Each job runs on its own
// goroutine and never overlaps itself.
type Scheduler struct {
	jobs   map[string]*Job
	order  []string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	now    func() time.Time
	after  func(d time.Duration) <-chan time.Time
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
		after:  time.After,
	}
}

// AddJob registers a job under a unique name.
func (s *Scheduler) AddJob(name string, trigger Trigger, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return ErrDuplicateName
	}

	s.jobs[name] = &Job{Name: name, Trigger: trigger, Fn: fn}
	s.order = append(s.order, name)
	slog.Info("Cron job registered", "name", name, "trigger", trigger.String())
	return nil
}

// Jobs lists registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.order {
		s.wg.Add(1)
		go s.loop(s.jobs[name])
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels pending triggers and waits for running jobs to return.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(job *Job) {
	defer s.wg.Done()

	for {
		next := job.Trigger.Next(s.now())
		slog.Debug("Cron job scheduled", "name", job.Name, "next_run", next)

		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-s.after(next.Sub(s.now())):
			if err := s.execute(s.ctx, job); errors.Is(err, ErrJobRunning) {
				slog.Warn("Cron job still running, trigger skipped", "name", job.Name)
			}
		}
	}
}

// execute runs the job unless it is already running.
func (s *Scheduler) execute(ctx context.Context, job *Job) error {
	if !job.running.TryLock() {
		return ErrJobRunning
	}
	defer job.running.Unlock()

	start := s.now()
	slog.Info("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return err
	}

	slog.Info("Cron job completed", "name", job.Name, "duration", time.Since(start))
	return nil
}

// RunJob executes one job immediately, outside its trigger schedule.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return ErrJobNotFound
	}
	return s.execute(ctx, job)
}

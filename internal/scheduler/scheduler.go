package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the refresh cycle from a fixed-interval cron entry.
type Scheduler struct {
	Cron     *cron.Cron
	Cycle    *Cycle
	Interval time.Duration
	Ctx      context.Context

	wg sync.WaitGroup // runs started outside cron
}

// NewScheduler creates a new Scheduler. Ticks that arrive while a cycle is
// still running are skipped.
func NewScheduler(ctx context.Context, cycle *Cycle, interval time.Duration) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Cycle:    cycle,
		Interval: interval,
		Ctx:      ctx,
	}
}

// Register adds the refresh task to the cron.
func (s *Scheduler) Register() error {
	expr := fmt.Sprintf("@every %s", s.Interval)
	if _, err := s.Cron.AddFunc(expr, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task %q: %w", expr, err)
	}
	log.Printf("[INFO] refresh registered: %s", expr)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for any running cycle to finish,
// including one started by RunNowAsync.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one refresh immediately, e.g. at startup so the dashboard
// is not empty until the first tick.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// RunNowAsync starts RunNow in the background. Stop waits for it.
func (s *Scheduler) RunNowAsync() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refreshTask()
	}()
}

func (s *Scheduler) refreshTask() {
	if s.Ctx.Err() != nil {
		return
	}
	if _, err := s.Cycle.Run(s.Ctx); err != nil {
		if errors.Is(err, ErrCycleInProgress) {
			log.Println("[WARN] previous refresh still running, skipping tick")
			return
		}
		log.Printf("[ERROR] refresh: %v", err)
	}
}

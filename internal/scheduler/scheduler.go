package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"card-auction/utils"
)

// task pairs a job with its cadence and its own reentrancy guard. The guard
// lives inside the wrapper and is never shared: a slow run of one task can
// only make that task skip ticks, never another.
type task struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)
	running  atomic.Bool
}

// Scheduler drives independently-cadenced periodic tasks. If a task is
// still running when its next tick fires, that tick is skipped and logged.
type Scheduler struct {
	mu      sync.Mutex
	tasks   []*task
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Register adds a periodic task. Must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, run func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &task{name: name, interval: interval, run: run})
}

// Start launches one ticker goroutine per task. Tasks stop when the given
// context is canceled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
}

// Stop cancels all tasks and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t *task) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, t)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, t *task) {
	if !t.running.CompareAndSwap(false, true) {
		utils.Warn("scheduler: tick skipped, previous run still in flight", map[string]any{
			"task": t.name,
		})
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer t.running.Store(false)
		defer func() {
			if r := recover(); r != nil {
				utils.Error("scheduler: task panicked", map[string]any{
					"task":  t.name,
					"panic": r,
				})
			}
		}()
		t.run(ctx)
	}()
}

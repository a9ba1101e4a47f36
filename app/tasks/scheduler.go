package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alittlebirdy/briefgen/app/config"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler runs vertical publishes on an interval in daemon mode. It
// deliberately uses a single worker: the pages and archive directories
// are shared mutable files with no locking, so runs must never overlap.
type Scheduler struct {
	verticals []*config.Vertical
	deps      Deps
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface

	mu      sync.Mutex
	pending map[string]bool
}

func NewScheduler(verticals []*config.Vertical, deps Deps, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		verticals: verticals,
		deps:      deps,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 16),
		pending:   make(map[string]bool),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueDueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueDueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueDueTasks() {
	for _, vertical := range s.verticals {
		if !vertical.Settings.Enabled {
			slog.Debug("Vertical disabled, skipping", "vertical", vertical.ID)
			continue
		}

		if !s.isDue(vertical) {
			continue
		}

		s.mu.Lock()
		if s.pending[vertical.ID] {
			s.mu.Unlock()
			continue
		}
		s.pending[vertical.ID] = true
		s.mu.Unlock()

		task := NewPublishVerticalTask(vertical, s.deps)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue PublishVerticalTask", "vertical", vertical.ID, "error", err)
			s.clearPending(vertical.ID)
		}
	}
}

func (s *Scheduler) isDue(vertical *config.Vertical) bool {
	lastRun, err := s.deps.RunRepo.GetLastRun(vertical.ID)
	if err != nil {
		slog.Warn("Failed to read last run, scheduling anyway", "vertical", vertical.ID, "error", err)
		return true
	}
	if lastRun == nil {
		return true
	}

	refresh := time.Duration(vertical.Settings.RefreshInterval) * time.Second
	return time.Since(lastRun.CreatedAt) >= refresh
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(task)
			s.clearPending(task.GetVertical())

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		// No retry path: a failed run waits for the next scheduling cycle.
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"vertical", task.GetVertical(),
			"error", err)
	}
}

func (s *Scheduler) clearPending(vertical string) {
	s.mu.Lock()
	delete(s.pending, vertical)
	s.mu.Unlock()
}

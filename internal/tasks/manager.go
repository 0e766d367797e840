// Package tasks tracks long-running background operations and reports their progress on the
// domain event bus.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"modgrip/internal/eventbus"
)

// ErrUnknownTask is returned for ids the manager has never seen
var ErrUnknownTask = errors.New("unknown task")

// Func is the body of a task
type Func func(ctx context.Context, r *Reporter) error

// Manager owns every task started in this process
type Manager struct {
	mu      sync.RWMutex
	tasks   map[string]*Task
	cancels map[string]context.CancelFunc
	bus     eventbus.EventBus
	now     func() time.Time
}

// NewManager creates a task manager publishing on bus; bus may be nil
func NewManager(bus eventbus.EventBus) *Manager {
	return &Manager{
		tasks:   make(map[string]*Task),
		cancels: make(map[string]context.CancelFunc),
		bus:     bus,
		now:     time.Now,
	}
}

// Start runs fn in the background and returns the new task id
func (m *Manager) Start(ctx context.Context, meta Metadata, fn Func) string {
	id, runCtx := m.register(ctx, meta)
	go func() {
		_ = m.run(runCtx, id, fn)
	}()
	return id
}

// Run runs fn on the calling goroutine while tracking it as a task
func (m *Manager) Run(ctx context.Context, meta Metadata, fn Func) error {
	id, runCtx := m.register(ctx, meta)
	return m.run(runCtx, id, fn)
}

// Cancel requests cancellation of a running task
func (m *Manager) Cancel(id string) error {
	m.mu.RLock()
	cancel, ok := m.cancels[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	cancel()
	return nil
}

// Get returns a snapshot of one task
func (m *Manager) Get(id string) (Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	return *t, nil
}

// List returns the active or the completed tasks in creation order.
// Tasks that never started are left out of both lists.
func (m *Manager) List(active bool) []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Task
	for _, t := range m.tasks {
		if t.IsComplete() != active && t.Status.State != StateUnstarted {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// RunningCount returns the number of tasks still in progress
func (m *Manager) RunningCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, t := range m.tasks {
		if t.Status.State == StateRunning {
			n++
		}
	}
	return n
}

func (m *Manager) register(ctx context.Context, meta Metadata) (string, context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	id := uuid.NewString()

	m.mu.Lock()
	m.tasks[id] = &Task{
		ID:       id,
		Metadata: meta,
		Status:   Status{State: StateUnstarted},
		Created:  m.now(),
	}
	m.cancels[id] = cancel
	m.mu.Unlock()

	return id, runCtx
}

func (m *Manager) run(ctx context.Context, id string, fn Func) error {
	m.update(id, func(t *Task) { t.Status.State = StateRunning })

	r := &Reporter{manager: m, id: id}
	err := fn(ctx, r)

	m.update(id, func(t *Task) {
		switch {
		case err == nil:
			t.Status.State = StateSuccess
			if t.Progress.Total > 0 {
				t.Progress.Completed = t.Progress.Total
			}
		case errors.Is(err, context.Canceled):
			t.Status.State = StateCancelled
			t.Status.Err = err
		default:
			t.Status.State = StateFailed
			t.Status.Err = err
		}
	})

	m.mu.Lock()
	if cancel, ok := m.cancels[id]; ok {
		cancel()
		delete(m.cancels, id)
	}
	m.mu.Unlock()

	if err != nil {
		log.Printf("Task %s failed: %v", id, err)
	}
	return err
}

func (m *Manager) update(id string, fn func(t *Task)) {
	m.mu.Lock()
	t, ok := m.tasks[id]
	if ok {
		fn(t)
	}
	m.mu.Unlock()

	if ok && m.bus != nil {
		m.bus.Publish(eventbus.TaskUpdatedEvent{TaskID: id})
	}
}

// Reporter lets a task body report progress. The zero Reporter discards everything.
type Reporter struct {
	manager *Manager
	id      string
}

// SetTotal sets the amount of work expected; zero keeps the task indeterminate
func (r *Reporter) SetTotal(total int64) {
	if r.manager == nil {
		return
	}
	r.manager.update(r.id, func(t *Task) { t.Progress.Total = total })
}

// Add records n more units of completed work
func (r *Reporter) Add(n int64) {
	if r.manager == nil {
		return
	}
	r.manager.update(r.id, func(t *Task) { t.Progress.Completed += n })
}

// Succeed attaches a message shown once the task completes successfully
func (r *Reporter) Succeed(info string) {
	if r.manager == nil {
		return
	}
	r.manager.update(r.id, func(t *Task) { t.Status.Success = info })
}

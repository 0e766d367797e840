package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"modgrip/internal/eventbus"
)

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func steppingClock() func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestRunTracksSuccess(t *testing.T) {
	bus := &recordingBus{}
	m := NewManager(bus)

	err := m.Run(context.Background(), Metadata{Title: "work"}, func(ctx context.Context, r *Reporter) error {
		r.SetTotal(10)
		r.Add(4)
		r.Succeed("all good")
		return nil
	})
	require.NoError(t, err)

	done := m.List(false)
	require.Len(t, done, 1)
	assert.Equal(t, StateSuccess, done[0].Status.State)
	assert.Equal(t, "all good", done[0].Status.Success)
	assert.Equal(t, int64(10), done[0].Progress.Completed)
	assert.Empty(t, m.List(true))

	// running, total, add, succeed, finished
	assert.Equal(t, 5, bus.count())
}

func TestRunTracksFailure(t *testing.T) {
	m := NewManager(nil)
	boom := errors.New("boom")

	err := m.Run(context.Background(), Metadata{Title: "fails"}, func(ctx context.Context, r *Reporter) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	done := m.List(false)
	require.Len(t, done, 1)
	assert.Equal(t, StateFailed, done[0].Status.State)
	assert.ErrorIs(t, done[0].Status.Err, boom)
}

func TestCancelStopsRunningTask(t *testing.T) {
	m := NewManager(nil)
	started := make(chan struct{})

	id := m.Start(context.Background(), Metadata{Title: "slow"}, func(ctx context.Context, r *Reporter) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	require.NoError(t, m.Cancel(id))

	assert.Eventually(t, func() bool {
		task, err := m.Get(id)
		return err == nil && task.Status.State == StateCancelled
	}, time.Second, 5*time.Millisecond)
}

func TestListSplitsActiveAndCompletedInCreationOrder(t *testing.T) {
	m := NewManager(nil)
	m.now = steppingClock()
	release := make(chan struct{})

	for _, title := range []string{"first", "second"} {
		m.Start(context.Background(), Metadata{Title: title}, func(ctx context.Context, r *Reporter) error {
			<-release
			return nil
		})
	}
	require.NoError(t, m.Run(context.Background(), Metadata{Title: "quick"}, func(context.Context, *Reporter) error {
		return nil
	}))

	assert.Eventually(t, func() bool { return m.RunningCount() == 2 }, time.Second, 5*time.Millisecond)

	active := m.List(true)
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Metadata.Title)
	assert.Equal(t, "second", active[1].Metadata.Title)

	completed := m.List(false)
	require.Len(t, completed, 1)
	assert.Equal(t, "quick", completed[0].Metadata.Title)

	close(release)
	assert.Eventually(t, func() bool { return len(m.List(false)) == 3 }, time.Second, 5*time.Millisecond)
}

func TestUnknownTask(t *testing.T) {
	m := NewManager(nil)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownTask)
	assert.ErrorIs(t, m.Cancel("missing"), ErrUnknownTask)
}

func TestZeroReporterIsSafe(t *testing.T) {
	r := &Reporter{}
	assert.NotPanics(t, func() {
		r.SetTotal(1)
		r.Add(1)
		r.Succeed("ok")
	})
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(Progress{Completed: 5}))
	assert.Equal(t, 25.0, Percent(Progress{Completed: 1, Total: 4}))
}

func TestStatusLine(t *testing.T) {
	tag := language.AmericanEnglish

	tests := []struct {
		name string
		task Task
		want string
	}{
		{
			name: "running with total shows percent only",
			task: Task{Status: Status{State: StateRunning}, Progress: Progress{Completed: 1, Total: 3}},
			want: "33.3%",
		},
		{
			name: "running without total shows state",
			task: Task{Status: Status{State: StateRunning}},
			want: "Running",
		},
		{
			name: "running download shows both sizes",
			task: Task{
				Metadata: Metadata{ProgressUnit: UnitBytes},
				Status:   Status{State: StateRunning},
				Progress: Progress{Completed: 500_000, Total: 2_000_000},
			},
			want: "25%  500.0KB / 2.0MB",
		},
		{
			name: "finished download shows single size and info",
			task: Task{
				Metadata: Metadata{ProgressUnit: UnitBytes},
				Status:   Status{State: StateSuccess, Success: "13 mods"},
				Progress: Progress{Completed: 4_000, Total: 4_000},
			},
			want: "Success  4.0KB  13 mods",
		},
		{
			name: "failed download keeps both sizes",
			task: Task{
				Metadata: Metadata{ProgressUnit: UnitBytes},
				Status:   Status{State: StateFailed},
				Progress: Progress{Completed: 1_000, Total: 4_000},
			},
			want: "Failed  1.0KB / 4.0KB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLine(tt.task, tag))
		})
	}
}

func TestClearCacheEmptiesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "manifests"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifests", "a.yml"), make([]byte, 1500), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), make([]byte, 500), 0644))

	m := NewManager(nil)
	id := m.ClearCache(context.Background(), dir)

	assert.Eventually(t, func() bool {
		task, err := m.Get(id)
		return err == nil && task.IsComplete()
	}, time.Second, 5*time.Millisecond)

	task, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, task.Status.State)
	assert.Equal(t, int64(2000), task.Progress.Completed)
	assert.Equal(t, "freed 2.0 KB", task.Status.Success)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearCacheMissingDirectorySucceeds(t *testing.T) {
	m := NewManager(nil)
	err := m.Run(context.Background(), Metadata{}, func(ctx context.Context, r *Reporter) error {
		return clearDir(ctx, filepath.Join(t.TempDir(), "absent"), r)
	})
	assert.NoError(t, err)
}

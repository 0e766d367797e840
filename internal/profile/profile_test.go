package profile

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/tasks"
)

const smallManifest = `profile: Modded
game: risk-of-rain-2
mods:
  - name: R2API
    owner: tristanmcpherson
    version:
      version_number: "5.0.5"
      downloads: 1200
      file_size: 2048
  - name: ProperSave
    owner: KingEnderBrine
    version:
      version_number: "2.9.0"
`

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

func (b *recordingBus) snapshot() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]eventbus.DomainEvent, len(b.events))
	copy(out, b.events)
	return out
}

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestFixtureParses(t *testing.T) {
	m := Fixture()

	assert.Equal(t, "Default", m.Profile)
	assert.Equal(t, "risk-of-rain-2", m.Game)
	require.NotEmpty(t, m.Mods)
	assert.Equal(t, "BepInEx-BepInExPack-5.4.2100", m.Mods[0].QualifiedName())
}

func TestParseManifestRejectsIncompleteEntries(t *testing.T) {
	_, err := ParseManifest(strings.NewReader("mods:\n  - name: Lonely\n"))
	assert.ErrorIs(t, err, ErrInvalidManifest)

	_, err = ParseManifest(strings.NewReader("mods:\n  -\n"))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestParseManifestEmptyDocument(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, m.Mods)
}

func TestExportWritesReadableManifest(t *testing.T) {
	mods := Fixture().Mods[:2]

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "Picked", "risk-of-rain-2", mods))

	back, err := ParseManifest(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Picked", back.Profile)
	require.Len(t, back.Mods, 2)
	assert.Equal(t, mods[1].QualifiedName(), back.Mods[1].QualifiedName())
}

func TestMemoryModStore(t *testing.T) {
	store := NewMemoryModStore()
	mods := Fixture().Mods
	store.Replace(mods)

	assert.Equal(t, len(mods), store.Len())
	assert.Same(t, mods[0], store.All()[0])
	assert.Same(t, mods[0], store.Get(domain.ModID{Owner: "BepInEx", Name: "BepInExPack"}))
	assert.Nil(t, store.Get(domain.ModID{Owner: "nobody", Name: "nothing"}))

	all := store.All()
	all[0] = nil
	assert.NotNil(t, store.All()[0])
}

func TestLoadBuiltInProfile(t *testing.T) {
	l := NewLoader(nil, nil, nil, "")

	p, err := l.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Default", p.Name)
	assert.Empty(t, p.Path)
}

func TestLoadFromDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Modded")
	path := writeManifest(t, dir, smallManifest)

	p, err := NewLoader(nil, nil, nil, "").Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "Modded", p.Name)
	assert.Equal(t, path, p.Path)
	assert.Len(t, p.Mods, 2)
}

func TestLoadNamesProfileAfterDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Unnamed")
	writeManifest(t, dir, "mods: []\n")

	p, err := NewLoader(nil, nil, nil, "").Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "Unnamed", p.Name)
}

func TestLoadRejectsUnsupportedScheme(t *testing.T) {
	_, err := NewLoader(nil, nil, nil, "").Load(context.Background(), "ftp://example.com/mods.yml")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestLoadFromURLRunsDownloadTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(smallManifest))
	}))
	defer srv.Close()

	cache := t.TempDir()
	manager := tasks.NewManager(nil)
	l := NewLoader(nil, manager, nil, cache)

	p, err := l.Load(context.Background(), srv.URL+"/profiles/modded.yml")
	require.NoError(t, err)
	assert.Equal(t, "Modded", p.Name)
	assert.Len(t, p.Mods, 2)

	done := manager.List(false)
	require.Len(t, done, 1)
	assert.Equal(t, tasks.KindDownload, done[0].Metadata.Kind)
	assert.Equal(t, tasks.StateSuccess, done[0].Status.State)
	assert.Equal(t, "2 mods", done[0].Status.Success)
	assert.Equal(t, int64(len(smallManifest)), done[0].Progress.Completed)

	cached, err := os.ReadDir(filepath.Join(cache, "manifests"))
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestLoadFromURLReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	manager := tasks.NewManager(nil)
	_, err := NewLoader(nil, manager, nil, "").Load(context.Background(), srv.URL+"/mods.yml")
	require.Error(t, err)

	done := manager.List(false)
	require.Len(t, done, 1)
	assert.Equal(t, tasks.StateFailed, done[0].Status.State)
}

func TestLoadFromURLFallsBackToCachedCopy(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(smallManifest))
	}))
	defer srv.Close()

	l := NewLoader(nil, nil, nil, t.TempDir())
	source := srv.URL + "/profiles/modded.yml"

	_, err := l.Load(context.Background(), source)
	require.NoError(t, err)

	failing.Store(true)
	p, err := l.Load(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, "Modded", p.Name)
	assert.Len(t, p.Mods, 2)

	_, err = NewLoader(nil, nil, nil, t.TempDir()).Load(context.Background(), source)
	assert.Error(t, err, "nothing cached yet")
}

func TestLoadFromURLKeepsCacheOnBadDownload(t *testing.T) {
	var broken atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if broken.Load() {
			_, _ = w.Write([]byte("mods:\n  - name: Lonely\n"))
			return
		}
		_, _ = w.Write([]byte(smallManifest))
	}))
	defer srv.Close()

	l := NewLoader(nil, nil, nil, t.TempDir())
	source := srv.URL + "/mods.yml"

	_, err := l.Load(context.Background(), source)
	require.NoError(t, err)

	broken.Store(true)
	p, err := l.Load(context.Background(), source)
	require.NoError(t, err)
	assert.Len(t, p.Mods, 2)
}

func TestLoadAndPublish(t *testing.T) {
	bus := &recordingBus{}
	store := NewMemoryModStore()
	l := NewLoader(bus, nil, store, "")

	l.LoadAndPublish(context.Background(), "")
	assert.Equal(t, len(Fixture().Mods), store.Len())

	l.LoadAndPublish(context.Background(), filepath.Join(t.TempDir(), "missing"))

	events := bus.snapshot()
	require.Len(t, events, 2)
	assert.IsType(t, eventbus.ModsLoadedEvent{}, events[0])
	failed, ok := events[1].(eventbus.ProfileLoadFailedEvent)
	require.True(t, ok)
	assert.Error(t, failed.Err)
	assert.Equal(t, len(Fixture().Mods), store.Len(), "failed loads keep the previous mods")
}

func TestLoaderAnswersLoadRequests(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	loaded := make(chan domain.Profile, 1)
	bus.Subscribe(eventbus.EventModsLoaded, func(e eventbus.DomainEvent) {
		loaded <- e.(eventbus.ModsLoadedEvent).Profile
	})

	dir := filepath.Join(t.TempDir(), "Modded")
	writeManifest(t, dir, smallManifest)
	NewLoader(bus, nil, NewMemoryModStore(), "")

	bus.Publish(eventbus.ProfileLoadRequestedEvent{Source: dir})

	select {
	case p := <-loaded:
		assert.Equal(t, "Modded", p.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("profile was not loaded")
	}
}

func TestFindProfiles(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Default"), smallManifest)
	writeManifest(t, filepath.Join(root, "nested", "Speedrun"), smallManifest)
	writeManifest(t, filepath.Join(root, ".trash", "Old"), smallManifest)
	writeManifest(t, filepath.Join(root, "a", "b", "c", "d", "TooDeep"), smallManifest)

	found, err := FindProfiles(root)
	require.NoError(t, err)

	assert.Len(t, found, 2)
	assert.Equal(t, filepath.Join(root, "Default", ManifestName), found["Default"])
	assert.Contains(t, found, "Speedrun")
}

func TestFindProfilesMissingRoot(t *testing.T) {
	_, err := FindProfiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDiscoveryServicePublishesScanLifecycle(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "Default"), smallManifest)

	bus := &recordingBus{}
	ds := NewDiscoveryService(bus)

	require.NoError(t, ds.StartScan(context.Background(), root))
	assert.Eventually(t, func() bool { return len(bus.snapshot()) == 3 }, 2*time.Second, 5*time.Millisecond)
	ds.StopScan()

	events := bus.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, eventbus.ProfileScanStartedEvent{Root: root}, events[0])
	assert.IsType(t, eventbus.ProfileDiscoveredEvent{}, events[1])
	assert.Equal(t, eventbus.ProfileScanCompletedEvent{ProfilesFound: 1}, events[2])
}

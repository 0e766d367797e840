package commands

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/profile"
	"modgrip/internal/ui/logic"
	"modgrip/internal/ui/state"
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

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                     {}

func TestLoadProfilePublishesRequest(t *testing.T) {
	bus := &recordingBus{}
	st := state.NewAppState()
	exec := NewExecutor(st, bus, nil)

	assert.Nil(t, exec.ExecuteLoadProfile("/tmp/mods.yml"))
	assert.True(t, st.Loading)
	require.Len(t, bus.events, 1)
	assert.Equal(t, eventbus.ProfileLoadRequestedEvent{Source: "/tmp/mods.yml"}, bus.events[0])
}

func TestExportWritesManifest(t *testing.T) {
	st := state.NewAppState()
	st.Profile = domain.Profile{Name: "Modded", Game: "risk-of-rain-2"}
	exec := NewExecutor(st, nil, nil)

	mods := profile.Fixture().Mods[:2]
	path := filepath.Join(t.TempDir(), "export", "mods.yml")

	msg := exec.ExecuteExport(path, mods)()
	done, ok := msg.(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, 2, done.Count)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	manifest, err := profile.ParseManifest(f)
	require.NoError(t, err)
	assert.Equal(t, "Modded", manifest.Profile)
	assert.Len(t, manifest.Mods, 2)
}

func TestExportReportsFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	exec := NewExecutor(state.NewAppState(), nil, nil)
	msg := exec.ExecuteExport(filepath.Join(blocker, "mods.yml"), nil)().(ExportedMsg)
	assert.Error(t, msg.Err)
}

func TestCopyUsesClipboard(t *testing.T) {
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	var copied string
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}

	exec := NewExecutor(state.NewAppState(), nil, nil)
	assert.Nil(t, exec.ExecuteCopy(""), "nothing to copy")

	msg := exec.ExecuteCopy("https://example.com/mods.yml")().(CopiedMsg)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "https://example.com/mods.yml", copied)

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	msg = exec.ExecuteCopy("x")().(CopiedMsg)
	assert.EqualError(t, msg.Err, "no clipboard")
}

func TestSaveSettingsPublishesChange(t *testing.T) {
	bus := &recordingBus{}
	st := state.NewAppState()
	st.SortOptions = logic.Prioritize(st.SortOptions, logic.SortByName)
	st.ShowDescriptions = false

	exec := NewExecutor(st, bus, nil)
	exec.ExecuteSaveSettings("fr-FR")
	exec.ExecuteSaveSettings("es")

	require.Len(t, bus.events, 2)
	assert.Equal(t, eventbus.ConfigChangedEvent{
		Revision:         1,
		Locale:           "fr-FR",
		SortColumn:       "name",
		ShowDescriptions: false,
	}, bus.events[0])
	assert.Equal(t, uint64(2), bus.events[1].(eventbus.ConfigChangedEvent).Revision)
}

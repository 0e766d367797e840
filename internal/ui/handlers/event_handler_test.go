package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/ui/state"
)

func TestModsLoadedRefreshesAndTracksProfile(t *testing.T) {
	st := state.NewAppState()
	st.Loading = true

	var refreshed, changed int
	h := NewEventHandler(st, Hooks{
		Refresh:        func() { refreshed++ },
		ProfileChanged: func() { changed++ },
	})

	loaded := domain.Profile{Name: "Modded", Path: "/profiles/Modded/mods.yml"}
	h.HandleEvent(eventbus.ModsLoadedEvent{Profile: loaded})

	assert.False(t, st.Loading)
	assert.Equal(t, loaded, st.Profile)
	assert.Equal(t, "/profiles/Modded/mods.yml", st.Profiles["Modded"])
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, 1, changed)

	// Reloading the same profile keeps the selection
	h.HandleEvent(eventbus.ModsLoadedEvent{Profile: loaded})
	assert.Equal(t, 2, refreshed)
	assert.Equal(t, 1, changed)
}

func TestLoadFailureOpensErrorDialog(t *testing.T) {
	st := state.NewAppState()
	st.Loading = true

	var shown *state.ErrorInfo
	h := NewEventHandler(st, Hooks{ShowError: func(info *state.ErrorInfo) { shown = info }})

	h.HandleEvent(eventbus.ProfileLoadFailedEvent{Source: "https://example.com/mods.yml", Err: errors.New("HTTP 404")})

	assert.False(t, st.Loading)
	require.NotNil(t, shown)
	assert.Equal(t, "Could not load https://example.com/mods.yml", shown.Message)
	assert.EqualError(t, shown.Err, "HTTP 404")
}

func TestErrorWithoutHookLandsInState(t *testing.T) {
	st := state.NewAppState()
	h := NewEventHandler(st, Hooks{})

	h.HandleEvent(eventbus.ErrorEvent{Message: "scan", Err: errors.New("denied")})

	require.NotNil(t, st.Error)
	assert.Equal(t, "scan", st.Error.Message)
}

func TestDiscoveryEvents(t *testing.T) {
	st := state.NewAppState()
	h := NewEventHandler(st, Hooks{})

	h.HandleEvent(eventbus.ProfileScanStartedEvent{Root: "/profiles"})
	assert.True(t, st.Scanning)

	h.HandleEvent(eventbus.ProfileDiscoveredEvent{Name: "Speedrun", Path: "/profiles/Speedrun/mods.yml"})
	h.HandleEvent(eventbus.ProfileScanCompletedEvent{ProfilesFound: 1})

	assert.False(t, st.Scanning)
	assert.Equal(t, map[string]string{"Speedrun": "/profiles/Speedrun/mods.yml"}, st.Profiles)
}

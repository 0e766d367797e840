package handlers

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/eventbus"
	"modgrip/internal/ui/state"
)

// Hooks are the model operations an event can trigger
type Hooks struct {
	Refresh        func()                 // re-run the current query
	ProfileChanged func()                 // a different profile was opened
	ShowError      func(*state.ErrorInfo) // open the error dialog
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
	hooks Hooks
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, hooks Hooks) *EventHandler {
	return &EventHandler{
		state: appState,
		hooks: hooks,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ModsLoadedEvent:
		changed := e.Profile.Path != h.state.Profile.Path || e.Profile.Name != h.state.Profile.Name
		h.state.Profile = e.Profile
		h.state.Loading = false
		h.state.StatusMessage = ""
		if e.Profile.Name != "" && e.Profile.Path != "" {
			h.state.Profiles[e.Profile.Name] = e.Profile.Path
		}
		if changed && h.hooks.ProfileChanged != nil {
			h.hooks.ProfileChanged()
		}
		h.refresh()

	case eventbus.ProfileLoadFailedEvent:
		h.state.Loading = false
		source := e.Source
		if source == "" {
			source = "built-in profile"
		}
		h.showError(&state.ErrorInfo{
			Message: fmt.Sprintf("Could not load %s", source),
			Err:     e.Err,
		})

	case eventbus.ProfileDiscoveredEvent:
		h.state.Profiles[e.Name] = e.Path

	case eventbus.ProfileScanStartedEvent:
		h.state.Scanning = true

	case eventbus.ProfileScanCompletedEvent:
		h.state.Scanning = false
		log.Printf("Profile scan found %d profiles", e.ProfilesFound)

	case eventbus.ErrorEvent:
		h.showError(&state.ErrorInfo{Message: e.Message, Err: e.Err})

	case eventbus.TaskUpdatedEvent:
		// Tasks are read from the manager at render time
	}

	return nil
}

func (h *EventHandler) refresh() {
	if h.hooks.Refresh != nil {
		h.hooks.Refresh()
	}
}

func (h *EventHandler) showError(info *state.ErrorInfo) {
	if h.hooks.ShowError != nil {
		h.hooks.ShowError(info)
		return
	}
	h.state.Error = info
}

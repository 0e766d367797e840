package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventModsLoaded           EventType = "ModsLoaded"
	EventProfileLoadFailed    EventType = "ProfileLoadFailed"
	EventProfileDiscovered    EventType = "ProfileDiscovered"
	EventProfileScanStarted   EventType = "ProfileScanStarted"
	EventProfileScanCompleted EventType = "ProfileScanCompleted"
	EventProfileLoadRequested EventType = "ProfileLoadRequested"
	EventTaskUpdated          EventType = "TaskUpdated"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
	EventConfigChanged        EventType = "ConfigChanged"
	EventAppReady             EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ModsLoadedEvent is emitted when a profile's mods have been read
type ModsLoadedEvent struct {
	Profile Profile
}

func (e ModsLoadedEvent) Type() EventType { return EventModsLoaded }

// ProfileLoadFailedEvent is emitted when a manifest cannot be read or parsed
type ProfileLoadFailedEvent struct {
	Source string
	Err    error
}

func (e ProfileLoadFailedEvent) Type() EventType { return EventProfileLoadFailed }

// ProfileDiscoveredEvent is emitted for every manifest found while scanning
type ProfileDiscoveredEvent struct {
	Name string
	Path string
}

func (e ProfileDiscoveredEvent) Type() EventType { return EventProfileDiscovered }

// ProfileScanStartedEvent is emitted when manifest discovery begins
type ProfileScanStartedEvent struct {
	Root string
}

func (e ProfileScanStartedEvent) Type() EventType { return EventProfileScanStarted }

// ProfileScanCompletedEvent is emitted when manifest discovery finishes
type ProfileScanCompletedEvent struct {
	ProfilesFound int
}

func (e ProfileScanCompletedEvent) Type() EventType { return EventProfileScanCompleted }

// ProfileLoadRequestedEvent asks the loader to (re)load a manifest
type ProfileLoadRequestedEvent struct {
	Source string // empty means the built-in profile
}

func (e ProfileLoadRequestedEvent) Type() EventType { return EventProfileLoadRequested }

// TaskUpdatedEvent carries a snapshot of a background task
type TaskUpdatedEvent struct {
	TaskID string
}

func (e TaskUpdatedEvent) Type() EventType { return EventTaskUpdated }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Locale  string
	Profile string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when a setting changed in the UI and needs saving.
// Revision grows with every change so a stale snapshot can be told apart.
type ConfigChangedEvent struct {
	Revision         uint64
	Locale           string
	SortColumn       string
	ShowDescriptions bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }

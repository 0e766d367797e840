package tasks

import "time"

// Kind classifies what a task does
type Kind int

const (
	KindOther Kind = iota
	KindAggregate
	KindDownload
)

// ProgressUnit says how progress numbers should be displayed
type ProgressUnit int

const (
	UnitOther ProgressUnit = iota
	UnitBytes
)

// State is the lifecycle position of a task
type State string

const (
	StateUnstarted State = "Unstarted"
	StateRunning   State = "Running"
	StateSuccess   State = "Success"
	StateFailed    State = "Failed"
	StateCancelled State = "Cancelled"
)

// Metadata describes a task for display
type Metadata struct {
	Title        string
	Kind         Kind
	ProgressUnit ProgressUnit
	URL          string // source of a download task
}

// Status is the current state plus its outcome details
type Status struct {
	State   State
	Success string // optional message for successful tasks
	Err     error
}

// Progress counts completed work
type Progress struct {
	Completed int64
	Total     int64 // zero means indeterminate
}

// Task is a snapshot of a tracked background operation
type Task struct {
	ID       string
	Metadata Metadata
	Status   Status
	Progress Progress
	Created  time.Time
}

// IsComplete reports whether the task reached a terminal state
func (t Task) IsComplete() bool {
	switch t.Status.State {
	case StateSuccess, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

package selection

// noPivot marks an unset pivot index
const noPivot = -1

// ChangedEvent is published after a toggle or range selection
type ChangedEvent struct {
	Added   int
	Removed int
	Total   int
}

// ClearedEvent is published after Clear
type ClearedEvent struct{}

package domain

// State is a snapshot of everything the derived-metric engines read.
type State struct {
	Log      LogStore
	Tasks    TaskList
	Settings Settings
}

// NewState returns an empty state with default settings.
func NewState() State {
	return State{
		Log:      NewLogStore(),
		Tasks:    TaskList{},
		Settings: DefaultSettings(),
	}
}

// Clone returns a deep copy, so engines can run on a snapshot while the
// owner keeps mutating its state.
func (s State) Clone() State {
	return State{
		Log:      s.Log.Clone(),
		Tasks:    s.Tasks.Clone(),
		Settings: s.Settings,
	}
}

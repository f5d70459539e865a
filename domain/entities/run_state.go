package entities

// RunState is a state of the description run state machine.
type RunState int

const (
	StateIdle RunState = iota
	StateLoading
	StateNoChangesFound
	StateNegotiating
	StateSessionUnavailable
	StateApplying
	StatePersisting
	StateDone
	StateFailed
)

var stateNames = map[RunState]string{
	StateIdle:               "Idle",
	StateLoading:            "Loading",
	StateNoChangesFound:     "NoChangesFound",
	StateNegotiating:        "Negotiating",
	StateSessionUnavailable: "SessionUnavailable",
	StateApplying:           "Applying",
	StatePersisting:         "Persisting",
	StateDone:               "Done",
	StateFailed:             "Failed",
}

func (s RunState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

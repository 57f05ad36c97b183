// Package state holds the proxy lifecycle state machine: the process states,
// the exit-code classifier, the single-value store and the static table of
// menu actions enabled in each state.
package state

import "strings"

// ProcessState is the lifecycle state of the proxy as reported by the CLI.
type ProcessState int

// Process states. Initial is only ever assigned at construction.
const (
	Initial ProcessState = iota
	Running
	StoppedPartially
	Stopped
	Error
)

var stateNames = map[ProcessState]string{
	Initial:          "INITIAL",
	Running:          "RUNNING",
	StoppedPartially: "STOPPED_PARTIALLY",
	Stopped:          "STOPPED",
	Error:            "ERROR",
}

// String returns the upper-case state name, e.g. "STOPPED_PARTIALLY".
func (s ProcessState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "ERROR"
}

// Title returns the state for display: lower-cased, underscores as spaces.
func (s ProcessState) Title() string {
	return strings.ReplaceAll(strings.ToLower(s.String()), "_", " ")
}

// Visual returns the state used for icon selection. Initial looks like Stopped.
func (s ProcessState) Visual() ProcessState {
	if s == Initial {
		return Stopped
	}
	return s
}

// States returns every state a probe can produce.
func States() []ProcessState {
	return []ProcessState{Running, StoppedPartially, Stopped, Error}
}

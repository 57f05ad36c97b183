package state

import "fmt"

// ExitEmptyOutput is the code a probe is forced to when the CLI printed nothing.
const ExitEmptyOutput = -1

// Mapping translates CLI exit codes into process states.
// Codes missing from Codes map to Error.
type Mapping struct {
	Version int
	Codes   map[int]ProcessState
}

// MappingV1 is the exit code contract of `susops ps`:
// 0 running, 2 partially stopped, 3 stopped. Code 1 is unmapped.
var MappingV1 = Mapping{
	Version: 1,
	Codes: map[int]ProcessState{
		0: Running,
		2: StoppedPartially,
		3: Stopped,
	},
}

var mappings = map[int]Mapping{
	MappingV1.Version: MappingV1,
}

// MappingFor returns the mapping registered under version.
func MappingFor(version int) (Mapping, error) {
	m, ok := mappings[version]
	if !ok {
		return MappingV1, fmt.Errorf("unknown exit code mapping version %d", version)
	}
	return m, nil
}

// Classify maps an exit code to a state. An empty probe output is a failed
// probe regardless of the code.
func (m Mapping) Classify(exitCode int, outputEmpty bool) ProcessState {
	if outputEmpty {
		return Error
	}
	if s, ok := m.Codes[exitCode]; ok {
		return s
	}
	return Error
}

// Classify maps an exit code using MappingV1.
func Classify(exitCode int, outputEmpty bool) ProcessState {
	return MappingV1.Classify(exitCode, outputEmpty)
}

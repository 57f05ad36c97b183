package state

// Action identifies a menu action whose availability depends on the state.
type Action int

// Tracked actions.
const (
	ActionStart Action = iota
	ActionStop
	ActionRestart
	ActionTestAny
	ActionTestAll
)

// Actions lists every tracked action in menu order.
func Actions() []Action {
	return []Action{ActionStart, ActionStop, ActionRestart, ActionTestAny, ActionTestAll}
}

// Label returns the menu title of the action.
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start Proxy"
	case ActionStop:
		return "Stop Proxy"
	case ActionRestart:
		return "Restart Proxy"
	case ActionTestAny:
		return "Test Any"
	case ActionTestAll:
		return "Test All"
	default:
		return "Unknown"
	}
}

// Bindings says, for each tracked action, whether it is enabled.
type Bindings map[Action]bool

// Enabled reports whether a is enabled. Missing actions are disabled.
func (b Bindings) Enabled(a Action) bool {
	return b[a]
}

var bindingTable = map[ProcessState]Bindings{
	Running: {
		ActionStart:   false,
		ActionStop:    true,
		ActionRestart: true,
		ActionTestAny: true,
		ActionTestAll: true,
	},
	StoppedPartially: {
		ActionStart:   true,
		ActionStop:    true,
		ActionRestart: true,
		ActionTestAny: true,
		ActionTestAll: true,
	},
	Stopped: {
		ActionStart:   true,
		ActionStop:    false,
		ActionRestart: false,
		ActionTestAny: false,
		ActionTestAll: false,
	},
}

// BindingsFor returns a complete binding set for s. States without a table
// entry (Error, Initial) disable every action.
func BindingsFor(s ProcessState) Bindings {
	out := make(Bindings, len(Actions()))
	row := bindingTable[s]
	for _, a := range Actions() {
		out[a] = row[a]
	}
	return out
}

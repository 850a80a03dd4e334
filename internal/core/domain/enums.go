// internal/core/domain/enums.go
package domain

// HostState tracks how far a host got through its pipeline.
type HostState string

const (
	HostStateNotStarted      HostState = "not_started"
	HostStateConnecting      HostState = "connecting"
	HostStateCommandsRunning HostState = "commands_running"
	HostStateExtracting      HostState = "extracting"
	HostStateCombining       HostState = "combining"
	HostStateDone            HostState = "done"
	HostStateFailed          HostState = "failed"
)

// IsValid verifica si el estado es conocido.
func (s HostState) IsValid() bool {
	switch s {
	case HostStateNotStarted, HostStateConnecting, HostStateCommandsRunning,
		HostStateExtracting, HostStateCombining, HostStateDone, HostStateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can happen.
func (s HostState) IsTerminal() bool {
	return s == HostStateDone || s == HostStateFailed
}

func (s HostState) String() string {
	return string(s)
}

// ParseMode selects how tolerant the query parser is.
type ParseMode int

const (
	// ParseModeStrict rejects any malformed condition.
	ParseModeStrict ParseMode = iota

	// ParseModeLenient keeps the conditions parsed before the first error.
	ParseModeLenient
)

func (m ParseMode) String() string {
	switch m {
	case ParseModeStrict:
		return "strict"
	case ParseModeLenient:
		return "lenient"
	default:
		return "unknown"
	}
}

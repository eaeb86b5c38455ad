package transport

// State of a session's state machine.
type State uint8

const (
	StateIdle State = iota
	StateMeasuring
	StateReporting
	StateCooldown

	StateListening
	StateSummarizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMeasuring:
		return "measuring"
	case StateReporting:
		return "reporting"
	case StateCooldown:
		return "cooldown"
	case StateListening:
		return "listening"
	case StateSummarizing:
		return "summarizing"
	default:
		return "unknown"
	}
}

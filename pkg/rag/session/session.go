package session

// Conversation roles as supplied by the caller.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MaxPairs is the number of completed question/answer exchanges allowed
// before a conversation must be restarted.
const MaxPairs = 5

// MaxTurns is the raw turn cap: one user turn plus one assistant turn
// per pair.
const MaxTurns = 2 * MaxPairs

// Turn is one conversational message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State describes where a conversation sits relative to the cap.
type State int

const (
	StateIdle State = iota
	StateActive
	StateLimitReached
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateLimitReached:
		return "limit_reached"
	}
	return "unknown"
}

// Session is a value object over the caller-supplied history. Nothing is
// stored server-side; the cap is recomputed here on every request so a
// client-held counter is never trusted.
type Session struct {
	history []Turn
}

func FromHistory(history []Turn) *Session {
	return &Session{history: history}
}

func (s *Session) History() []Turn {
	return s.history
}

// Pairs counts completed exchanges. Odd trailing turns do not count.
func (s *Session) Pairs() int {
	return len(s.history) / 2
}

func (s *Session) State() State {
	switch {
	case len(s.history) >= MaxTurns:
		return StateLimitReached
	case len(s.history) == 0:
		return StateIdle
	default:
		return StateActive
	}
}

// CanAsk reports whether one more question is allowed. The cap check is
// on raw turn count, matching the wire contract.
func (s *Session) CanAsk() bool {
	return len(s.history) < MaxTurns
}

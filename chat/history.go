// history.go holds the conversation log: an ordered, length-capped
// sequence of turns. The log is owned by one Chatbot and never shared
// across sessions.
package chat

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one exchange entry in the conversation log.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// appendCapped appends turns and drops the oldest entries once the log
// exceeds max. A max of zero or less means unbounded.
func appendCapped(history []Turn, max int, turns ...Turn) []Turn {
	history = append(history, turns...)
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}

// recentWindow returns the trailing k turns (all of them if k exceeds
// the log length).
func recentWindow(history []Turn, k int) []Turn {
	if k <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > k {
		return history[len(history)-k:]
	}
	return history
}

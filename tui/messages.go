// messages.go defines Bubble Tea messages used for async communication.
//
// Chatbot turns run in goroutines and send their results back via
// these message types, so the UI never blocks on the model or the
// database.
package tui

import (
	"github.com/propchat/propchat/chat"
)

// AnswerMsg is sent when a chatbot turn completes.
type AnswerMsg struct {
	Response *chat.Response
}

// StatusMsg is a transient status message for the status bar.
type StatusMsg string

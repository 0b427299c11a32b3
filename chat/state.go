// state.go defines the closed enums and the per-turn working state
// threaded through the pipeline stages.
package chat

import (
	"fmt"

	"github.com/propchat/propchat/store"
)

// Category classifies a user question. The zero value is Data: every
// ambiguous path in the pipeline deliberately lands on the database
// route, because a missed data query costs the user a useful answer
// while a misrouted greeting costs nothing.
type Category int

const (
	// CategoryData — the question needs the database.
	CategoryData Category = iota

	// CategoryConversational — greeting/farewell/thanks, answered
	// without touching storage.
	CategoryConversational
)

func (c Category) String() string {
	if c == CategoryConversational {
		return "conversational"
	}
	return "data"
}

// MarshalJSON renders the category as its label.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

// State tracks the SQL synthesis loop for one turn.
type State int

const (
	// StateGenerating — waiting on the model for a SQL statement.
	StateGenerating State = iota

	// StateExecuting — running the statement against storage.
	StateExecuting

	// StateRetrying — execution failed, asking the model to correct
	// the statement.
	StateRetrying

	// StateSucceeded — rows captured (possibly zero). Terminal.
	StateSucceeded

	// StateExhausted — the retry budget is spent. Terminal.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateExecuting:
		return "executing"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// QueryState is the working state for one invocation of the pipeline.
// Created fresh per turn, mutated in place by the stages, and discarded
// once the answer is appended to the conversation log.
type QueryState struct {
	Question string
	History  []Turn
	Category Category
	State    State

	SQL     string
	Rows    *store.QueryResult
	Answer  string
	ErrText string
	Retries int

	TenantID string
	ModelID  string
}

// Response is what the pipeline boundary hands to front ends. Failures
// inside the pipeline surface as apology text plus the Err field; the
// raw error never reaches the user.
type Response struct {
	Answer   string   `json:"answer"`
	Category Category `json:"category"`
	SQL      string   `json:"sql,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// compose.go turns a terminal QueryState into the user-facing answer.
//
// Happy paths go through the model for a conversational rendering,
// including empty result sets ("I couldn't find any matching records").
// The exhausted and no-result paths return fixed strings instead: the
// failure surface must be predictable and testable without a model.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/store"
)

// maxComposeRows bounds how many rows are rendered into the response
// prompt; anything beyond is summarized by count.
const maxComposeRows = 50

// compose produces the final answer for the turn.
func (c *Chatbot) compose(ctx context.Context, st *QueryState) string {
	switch {
	case st.Category == CategoryConversational:
		return c.composeGreeting(ctx, st)
	case st.State == StateSucceeded:
		return c.composeDataAnswer(ctx, st)
	case st.State == StateExhausted:
		return apologyMaxRetries
	default:
		// Generation never produced an executable statement.
		return apologyNoResult
	}
}

func (c *Chatbot) composeGreeting(ctx context.Context, st *QueryState) string {
	reply, err := c.gateway.Invoke(ctx, st.Question, promptGreeting)
	if err != nil {
		applog.Error("compose: greeting failed: %v", err)
		st.ErrText = apologyResponseGeneration
		return apologyResponseGeneration
	}
	return strings.TrimSpace(reply)
}

func (c *Chatbot) composeDataAnswer(ctx context.Context, st *QueryState) string {
	prompt := fmt.Sprintf(
		"Question: %s\n\nSQL query executed:\n%s\n\nQuery results:\n%s\n\nProvide a natural language answer to the question based on these results.",
		st.Question, st.SQL, renderRows(st.Rows))

	reply, err := c.gateway.Invoke(ctx, prompt, promptResponse)
	if err != nil {
		applog.Error("compose: response generation failed: %v", err)
		st.ErrText = apologyResponseGeneration
		return apologyResponseGeneration
	}
	return strings.TrimSpace(reply)
}

// renderRows flattens a result set into the text block the response
// prompt consumes.
func renderRows(res *store.QueryResult) string {
	if res == nil || res.RowCount == 0 {
		return "(no rows returned)"
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(res.Columns, " | "))
	sb.WriteString("\n")

	shown := res.Rows
	if len(shown) > maxComposeRows {
		shown = shown[:maxComposeRows]
	}
	for _, row := range shown {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	if res.RowCount > maxComposeRows {
		sb.WriteString(fmt.Sprintf("... and %d more rows\n", res.RowCount-maxComposeRows))
	}
	return sb.String()
}

// synth.go is the SQL synthesis and retry loop: generate a statement,
// execute it, and on execution failure feed the statement and the
// engine's error back to the model for correction, up to a bounded
// retry budget.
//
// Design decisions:
//   - The loop is explicit with a counter, so the termination bound is
//     visible: at most MaxRetries+1 generation calls and MaxRetries+1
//     execution attempts per turn.
//   - Only execution failures are retried. A gateway failure during
//     generation leaves nothing to execute, so it ends the turn.
//   - The correction prompt restates the full pattern-matching rules,
//     not just the error — a corrected statement must honor the same
//     case-insensitive LIKE policy as a first attempt.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/llm"
)

// answerDataQuery drives st from StateGenerating to a terminal state.
func (c *Chatbot) answerDataQuery(ctx context.Context, st *QueryState, schema, fuzzyCtx string) {
	prompt := buildGenerationPrompt(st.Question, st.History, schema, fuzzyCtx)

	for {
		raw, err := c.gateway.Invoke(ctx, prompt, promptSQLGenerator)
		if err != nil {
			// No SQL to retry with; the turn ends here.
			st.ErrText = llm.UserMessage(err)
			applog.Error("synth: generation failed: %v", err)
			return
		}

		st.SQL = stripFences(raw)
		st.State = StateExecuting

		rows, execErr := c.store.Execute(ctx, st.SQL)
		if execErr == nil {
			st.Rows = rows
			st.State = StateSucceeded
			return
		}

		st.ErrText = execErr.Error()
		applog.Event("synth", "execution failed (attempt %d): %s", st.Retries+1, st.ErrText)

		if st.Retries >= c.cfg.MaxRetries {
			st.State = StateExhausted
			return
		}
		st.Retries++
		st.State = StateRetrying
		prompt = buildCorrectionPrompt(st.Question, st.SQL, st.ErrText, schema, fuzzyCtx)
	}
}

// buildGenerationPrompt assembles schema + fuzzy hints + history +
// question for the first attempt.
func buildGenerationPrompt(question string, history []Turn, schema, fuzzyCtx string) string {
	var sb strings.Builder
	sb.WriteString("DATABASE SCHEMA:\n")
	sb.WriteString(schema)
	if fuzzyCtx != "" {
		sb.WriteString("\n")
		sb.WriteString(fuzzyCtx)
	}
	writeHistory(&sb, history)
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nSQL query:")
	return sb.String()
}

// buildCorrectionPrompt carries the failing statement and the literal
// engine error alongside everything the first attempt saw.
func buildCorrectionPrompt(question, failedSQL, errText, schema, fuzzyCtx string) string {
	var sb strings.Builder
	sb.WriteString("DATABASE SCHEMA:\n")
	sb.WriteString(schema)
	if fuzzyCtx != "" {
		sb.WriteString("\n")
		sb.WriteString(fuzzyCtx)
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nThe previous SQL query failed:\n")
	sb.WriteString(failedSQL)
	sb.WriteString("\n\nError message:\n")
	sb.WriteString(errText)
	sb.WriteString("\n\nGenerate a corrected SQL query following all the rules above.\n\nSQL query:")
	return sb.String()
}

func writeHistory(sb *strings.Builder, history []Turn) {
	if len(history) == 0 {
		return
	}
	sb.WriteString("\nPrevious conversation:\n")
	for _, t := range history {
		sb.WriteString(fmt.Sprintf("%s: %s\n", t.Role, t.Content))
	}
}

// stripFences removes incidental markdown fencing from the model's
// output. The prompt forbids fences, but models add them anyway.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		// Drop a language tag like "sql" on the first line.
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			first := strings.TrimSpace(strings.ToLower(s[:idx]))
			if first == "sql" || first == "sqlite" {
				s = s[idx+1:]
			}
		}
	}
	return strings.TrimSpace(s)
}

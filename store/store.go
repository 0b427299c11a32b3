// Package store manages the real-estate listings database.
//
// Design decisions:
//   - Executor is an interface so the chat pipeline can be tested with
//     a mock store, and so the embedded SQLite backend and the pgx
//     Postgres backend stay interchangeable.
//   - Execute returns rows as strings. Generated SQL has unpredictable
//     column sets, so results are rendered generically rather than
//     scanned into domain structs.
//   - Only SELECT statements are executed. The model is instructed to
//     emit SELECTs, but nothing upstream enforces it, so the store does.
package store

import (
	"context"
	"fmt"
	"strings"
)

// QueryResult holds the output of an arbitrary SQL query.
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
}

// Executor is the storage boundary consumed by the chat pipeline.
type Executor interface {
	// Execute runs one SELECT statement and collects all rows.
	// Failures are returned as *ExecutionError.
	Execute(ctx context.Context, sqlText string) (*QueryResult, error)

	// DistinctCities lists known city names.
	DistinctCities(ctx context.Context) ([]string, error)

	// DistinctDevelopers lists known developer names, optionally
	// filtered by tenant.
	DistinctDevelopers(ctx context.Context, tenantID string) ([]string, error)

	// DistinctProjects lists known project names, optionally filtered
	// by tenant.
	DistinctProjects(ctx context.Context, tenantID string) ([]string, error)

	// TableCounts returns row counts per domain table.
	TableCounts(ctx context.Context) (map[string]int, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}

// ExecutionError is a storage failure on a generated statement. It
// carries the offending SQL so the correction prompt can include it;
// the raw message is never shown to end users.
type ExecutionError struct {
	SQL     string
	Message string
}

func (e *ExecutionError) Error() string { return e.Message }

func execError(sqlText string, err error) *ExecutionError {
	return &ExecutionError{SQL: sqlText, Message: err.Error()}
}

// ensureReadOnly rejects anything that is not a single SELECT (or a
// WITH ... SELECT). The rejection is an ExecutionError so the retry
// loop treats it like any other bad statement and asks the model for a
// corrected one.
func ensureReadOnly(sqlText string) error {
	stmt := stripLeadingComments(sqlText)
	if stmt == "" {
		return &ExecutionError{SQL: sqlText, Message: "empty query"}
	}

	// Reject multiple statements.
	if rest := strings.TrimRight(stmt, "; \t\r\n"); strings.Contains(rest, ";") {
		return &ExecutionError{SQL: sqlText, Message: "only a single statement is allowed"}
	}

	first := strings.ToUpper(firstWord(stmt))
	if first != "SELECT" && first != "WITH" {
		return &ExecutionError{
			SQL:     sqlText,
			Message: fmt.Sprintf("only SELECT queries are allowed, got %s", first),
		}
	}
	return nil
}

// stripLeadingComments removes whitespace and SQL comments before the
// first keyword.
func stripLeadingComments(s string) string {
	s = strings.TrimSpace(s)
	for {
		switch {
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}
			s = strings.TrimSpace(s[idx+1:])
		case strings.HasPrefix(s, "/*"):
			idx := strings.Index(s, "*/")
			if idx < 0 {
				return ""
			}
			s = strings.TrimSpace(s[idx+2:])
		default:
			return s
		}
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' {
			return s[:i]
		}
	}
	return s
}

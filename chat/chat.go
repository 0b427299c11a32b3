// Package chat implements the query-routing and SQL-generation
// pipeline behind the real-estate chatbot.
//
// Design decisions:
//   - Dependencies (gateway, store, limits) are injected at
//     construction; there are no package-level singletons.
//   - One Chatbot per user session. The instance serializes its own
//     turns; independent sessions run concurrently on separate
//     instances sharing only the storage engine.
//   - Tenant and model are immutable for the duration of a turn.
//     SetTenant during a running Ask applies to the next turn.
package chat

import (
	"context"
	"sync"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/llm"
	"github.com/propchat/propchat/store"
)

// Chatbot is the pipeline entry point exposed to front ends.
type Chatbot struct {
	gateway llm.Invoker
	store   store.Executor
	cfg     config.ChatConfig

	mu       sync.Mutex
	history  []Turn
	tenantID string
}

// New constructs a chatbot session with explicit dependencies.
func New(gateway llm.Invoker, st store.Executor, cfg config.ChatConfig) *Chatbot {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Chatbot{
		gateway: gateway,
		store:   st,
		cfg:     cfg,
	}
}

// Ask runs one full turn: classify, optionally synthesize and execute
// SQL, compose an answer. It never returns an error; pipeline failures
// surface as apology text plus the Err field of the response.
func (c *Chatbot) Ask(ctx context.Context, question string, preserveHistory bool) *Response {
	c.mu.Lock()
	st := &QueryState{
		Question: question,
		History:  append([]Turn(nil), c.history...),
		State:    StateGenerating,
		TenantID: c.tenantID,
		ModelID:  c.gateway.ModelID(),
	}
	c.mu.Unlock()

	st.Category = c.classify(ctx, question, recentWindow(st.History, c.cfg.RouterWindow))
	applog.Event("chat", "routed %q as %s", question, st.Category)

	if st.Category == CategoryData {
		schema := store.SchemaText(st.TenantID)
		fuzzyCtx := FuzzyContext(ctx, c.store, st.TenantID)
		c.answerDataQuery(ctx, st, schema, fuzzyCtx)
	}

	st.Answer = c.compose(ctx, st)

	if preserveHistory {
		c.mu.Lock()
		c.history = appendCapped(c.history, c.cfg.MaxHistory,
			Turn{Role: RoleUser, Content: question},
			Turn{Role: RoleAssistant, Content: st.Answer},
		)
		c.mu.Unlock()
	}

	resp := &Response{
		Answer:   st.Answer,
		Category: st.Category,
	}
	if st.Category == CategoryData {
		resp.SQL = st.SQL
	}
	if st.State != StateSucceeded && st.Category == CategoryData {
		resp.Err = st.ErrText
	}
	return resp
}

// ResetHistory clears the conversation log.
func (c *Chatbot) ResetHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// History returns a copy of the conversation log.
func (c *Chatbot) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.history...)
}

// SetTenant rebinds the tenant for subsequent turns. Prior history is
// kept. An empty identifier means no filtering.
func (c *Chatbot) SetTenant(tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tenantID = tenantID
}

// TenantID returns the currently bound tenant identifier.
func (c *Chatbot) TenantID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tenantID
}

// ModelID reports the gateway's model for display.
func (c *Chatbot) ModelID() string {
	return c.gateway.ModelID()
}

// app.go is the Bubble Tea model for the chat screen.
//
// Flow:
//  1. User types a question and presses Enter
//  2. The turn runs in a goroutine; the transcript shows a spinner line
//  3. AnswerMsg arrives and is appended to the transcript
//
// Slash commands switch model and tenant without leaving the screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/propchat/propchat/chat"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/llm"
	"github.com/propchat/propchat/store"
)

const appVersion = "0.1.0"

type transcriptEntry struct {
	role    string // "user", "assistant", "system"
	content string
	sql     string // generated SQL, assistant entries only
}

// App is the root Bubble Tea model.
type App struct {
	cfg   *config.Config
	store store.Executor

	modelKey  string
	tenantKey string
	bot       *chat.Chatbot

	viewport   *Viewport
	transcript []transcriptEntry
	input      string
	loading    bool
	showSQL    bool
	statusMsg  string

	width  int
	height int
}

// NewApp creates the application bound to the default model and tenant.
func NewApp(cfg *config.Config, st store.Executor) (*App, error) {
	a := &App{
		cfg:       cfg,
		store:     st,
		modelKey:  cfg.DefaultModel,
		tenantKey: cfg.DefaultTenant,
		viewport:  NewViewport(80, 20),
	}
	if err := a.rebind(); err != nil {
		return nil, err
	}
	return a, nil
}

// rebind builds a fresh chatbot for the current model and tenant keys.
func (a *App) rebind() error {
	model, err := a.cfg.Model(a.modelKey)
	if err != nil {
		return err
	}
	tenant, err := a.cfg.Tenant(a.tenantKey)
	if err != nil {
		return err
	}
	gw := llm.NewClient(a.cfg.API.URL, a.cfg.API.Key, model.ID, model.Temperature, a.cfg.API.Timeout())
	a.bot = chat.New(gw, a.store, a.cfg.Chat)
	a.bot.SetTenant(tenant.ID)
	return nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.refresh()
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// header(1) + blank(1) + prompt(1) + status(1) = 4 lines of chrome
		a.viewport.SetSize(msg.Width, msg.Height-4)
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case AnswerMsg:
		a.loading = false
		entry := transcriptEntry{role: "assistant", content: msg.Response.Answer}
		if msg.Response.Category == chat.CategoryData {
			entry.sql = msg.Response.SQL
		}
		a.transcript = append(a.transcript, entry)
		a.refresh()
		a.viewport.End()
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "enter":
		return a, a.submit()
	case "ctrl+l":
		a.bot.ResetHistory()
		a.transcript = nil
		a.statusMsg = "history cleared"
		a.refresh()
		return a, nil
	case "ctrl+k":
		a.viewport.ScrollUp(1)
	case "ctrl+j":
		a.viewport.ScrollDown(1)
	case "pgup":
		a.viewport.PageUp()
	case "pgdown":
		a.viewport.PageDown()
	case "backspace":
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			a.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			a.input += " "
		}
	}
	return a, nil
}

func (a *App) submit() tea.Cmd {
	text := strings.TrimSpace(a.input)
	if text == "" || a.loading {
		return nil
	}
	a.input = ""
	a.statusMsg = ""

	if strings.HasPrefix(text, "/") {
		a.runCommand(text)
		a.refresh()
		a.viewport.End()
		return nil
	}

	a.transcript = append(a.transcript, transcriptEntry{role: "user", content: text})
	a.loading = true
	a.refresh()
	a.viewport.End()

	bot := a.bot
	return func() tea.Msg {
		return AnswerMsg{Response: bot.Ask(context.Background(), text, true)}
	}
}

// runCommand handles the slash commands.
func (a *App) runCommand(text string) {
	fields := strings.Fields(text)
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/help":
		a.systemMessage(helpText())
	case "/models":
		var lines []string
		for _, key := range a.cfg.ModelKeys() {
			m := a.cfg.Models[key]
			marker := "  "
			if key == a.modelKey {
				marker = "* "
			}
			lines = append(lines, fmt.Sprintf("%s%-12s %s", marker, key, m.DisplayName))
		}
		a.systemMessage("Available models:\n" + strings.Join(lines, "\n"))
	case "/tenants":
		var lines []string
		for _, key := range a.cfg.TenantKeys() {
			t := a.cfg.Tenants[key]
			marker := "  "
			if key == a.tenantKey {
				marker = "* "
			}
			lines = append(lines, fmt.Sprintf("%s%-12s %s", marker, key, t.DisplayName))
		}
		a.systemMessage("Available tenants:\n" + strings.Join(lines, "\n"))
	case "/model":
		if arg == "" {
			a.statusMsg = "usage: /model <key>"
			return
		}
		prev := a.modelKey
		a.modelKey = arg
		if err := a.rebind(); err != nil {
			a.modelKey = prev
			a.statusMsg = err.Error()
			return
		}
		a.transcript = nil
		a.systemMessage("Switched to " + a.cfg.Models[arg].DisplayName + ". History cleared.")
	case "/tenant":
		if arg == "" {
			a.statusMsg = "usage: /tenant <key>"
			return
		}
		tenant, err := a.cfg.Tenant(arg)
		if err != nil {
			a.statusMsg = err.Error()
			return
		}
		a.tenantKey = arg
		a.bot.SetTenant(tenant.ID)
		a.systemMessage("Tenant set to " + tenant.DisplayName + ". Applies from the next question.")
	case "/reset":
		a.bot.ResetHistory()
		a.transcript = nil
		a.statusMsg = "history cleared"
	case "/sql":
		a.showSQL = !a.showSQL
		if a.showSQL {
			a.statusMsg = "showing generated SQL"
		} else {
			a.statusMsg = "hiding generated SQL"
		}
	case "/quit":
		// handled by the caller via ctrl+c as well; a plain message here
		a.statusMsg = "press Ctrl+C to quit"
	default:
		a.statusMsg = "unknown command " + cmd + " (try /help)"
	}
}

func (a *App) systemMessage(text string) {
	a.transcript = append(a.transcript, transcriptEntry{role: "system", content: text})
}

// refresh re-renders the transcript into the viewport.
func (a *App) refresh() {
	var lines []string

	if len(a.transcript) == 0 {
		lines = append(lines,
			StyleTitle.Render("🏠 Property Chat"),
			"",
			"Ask about projects, units, prices, and availability:",
			"  • \"How many projects are in Chennai?\"",
			"  • \"Show me 3BHK units under 2 crores\"",
			"  • \"Which developers have ready to move projects?\"",
			"",
			StyleDimmed.Render("Type a question and press Enter. /help lists commands."),
		)
	}

	userStyle := lipgloss.NewStyle().Foreground(ColorDim).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(ColorSuccess)

	for _, entry := range a.transcript {
		switch entry.role {
		case "user":
			lines = append(lines, userStyle.Render("You: ")+entry.content, "")
		case "assistant":
			lines = append(lines, botStyle.Render("Bot:"))
			for _, line := range strings.Split(entry.content, "\n") {
				lines = append(lines, "  "+line)
			}
			if a.showSQL && entry.sql != "" {
				lines = append(lines, StyleDimmed.Render("  sql> "+entry.sql))
			}
			lines = append(lines, "")
		case "system":
			for _, line := range strings.Split(entry.content, "\n") {
				lines = append(lines, StyleWarning.Render(line))
			}
			lines = append(lines, "")
		}
	}

	if a.loading {
		lines = append(lines, StyleDimmed.Render("  ⏳ Thinking..."))
	}

	a.viewport.SetContentLines(lines)
}

// View implements tea.Model.
func (a *App) View() string {
	model := a.cfg.Models[a.modelKey]
	tenant := a.cfg.Tenants[a.tenantKey]
	header := StyleBold.Render("propchat "+appVersion) + "  " +
		StyleDimmed.Render(model.DisplayName+" · "+tenant.DisplayName)

	prompt := StylePrompt.Render("Ask> ") + a.input + "█"
	if a.loading {
		prompt = StylePrompt.Render("Ask> ") + StyleDimmed.Render("waiting for response...")
	}

	status := a.statusMsg
	if status == "" {
		status = helpBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		a.viewport.Render(),
		"",
		prompt,
		StyleStatusBar.Render(status),
	)
}

func helpBar() string {
	pairs := []struct{ key, desc string }{
		{"Enter", "send"},
		{"Ctrl+L", "clear"},
		{"PgUp/PgDn", "scroll"},
		{"Ctrl+C", "quit"},
	}
	var parts []string
	for _, p := range pairs {
		parts = append(parts, StyleHelpKey.Render(p.key)+StyleHelpDesc.Render(" "+p.desc))
	}
	return strings.Join(parts, "  ")
}

func helpText() string {
	return strings.Join([]string{
		"Commands:",
		"  /model <key>   switch model (clears history)",
		"  /models        list models",
		"  /tenant <key>  switch tenant (applies next question)",
		"  /tenants       list tenants",
		"  /sql           toggle showing generated SQL",
		"  /reset         clear chat history",
		"  /help          this text",
	}, "\n")
}

// router.go is the single-turn classifier deciding whether a question
// needs the database.
//
// Policy: the router fails open. A gateway error or an unrecognized
// label both land on CategoryData — most domain questions still deserve
// an execution attempt over a generic failure message, and a false
// "conversational" would leave the user with no useful answer.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/propchat/propchat/applog"
)

// classify routes the question using the trailing history window for
// pronoun disambiguation ("how about that one"). It never returns an
// error.
func (c *Chatbot) classify(ctx context.Context, question string, recent []Turn) Category {
	reply, err := c.gateway.Invoke(ctx, buildRouterPrompt(question, recent), promptRouter)
	if err != nil {
		applog.Error("router: gateway failed, defaulting to data: %v", err)
		return CategoryData
	}
	return parseCategoryLabel(reply)
}

// parseCategoryLabel normalizes the model's single-word reply. Anything
// that is not recognizably "general" is data.
func parseCategoryLabel(reply string) Category {
	label := strings.ToLower(strings.TrimSpace(reply))
	label = strings.Trim(label, `"'.!`)
	switch label {
	case "general", "conversational":
		return CategoryConversational
	default:
		return CategoryData
	}
}

func buildRouterPrompt(question string, recent []Turn) string {
	var sb strings.Builder
	if len(recent) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, t := range recent {
			sb.WriteString(fmt.Sprintf("%s: %s\n", t.Role, t.Content))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Classify this query: ")
	sb.WriteString(question)
	return sb.String()
}

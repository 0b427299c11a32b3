// fuzzy.go builds the disambiguation hint block for the SQL generation
// prompt and normalizes misspelled city names.
//
// The hint block lists known entity names read live from storage so the
// model can produce correct LIKE filters despite misspellings. It is
// size-capped to bound prompt growth and recomputed per request (seed
// data can change between sessions; no invalidation protocol needed).
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/llm"
	"github.com/propchat/propchat/store"
)

const (
	maxFuzzyCities     = 20
	maxFuzzyDevelopers = 20
	maxFuzzyProjects   = 30
)

// FuzzyContext renders the "AVAILABLE DATA IN DATABASE" hint block.
// Lookups are best-effort: a storage error degrades to a smaller block
// rather than failing the turn.
func FuzzyContext(ctx context.Context, st store.Executor, tenantID string) string {
	cities, err := st.DistinctCities(ctx)
	if err != nil {
		applog.Error("fuzzy: list cities: %v", err)
	}
	developers, err := st.DistinctDevelopers(ctx, tenantID)
	if err != nil {
		applog.Error("fuzzy: list developers: %v", err)
	}
	projects, err := st.DistinctProjects(ctx, tenantID)
	if err != nil {
		applog.Error("fuzzy: list projects: %v", err)
	}

	if len(cities) == 0 && len(developers) == 0 && len(projects) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nAVAILABLE DATA IN DATABASE:\n")
	writeNameList(&sb, "Cities", cities, maxFuzzyCities)
	writeNameList(&sb, "Developers", developers, maxFuzzyDevelopers)
	writeNameList(&sb, "Projects", projects, maxFuzzyProjects)
	sb.WriteString("\nIMPORTANT: Use LIKE with wildcards for fuzzy matching on these names.\n")
	return sb.String()
}

func writeNameList(sb *strings.Builder, label string, names []string, max int) {
	if len(names) == 0 {
		return
	}
	shown := names
	if len(shown) > max {
		shown = shown[:max]
	}
	sb.WriteString(fmt.Sprintf("\n%s: %s", label, strings.Join(shown, ", ")))
	if len(names) > max {
		sb.WriteString(fmt.Sprintf(" (and %d more)", len(names)-max))
	}
	sb.WriteString("\n")
}

// NormalizeCity maps a possibly misspelled city name onto a known city.
// Exact matches skip the model; an unverifiable model answer falls back
// to the original input.
func NormalizeCity(ctx context.Context, gw llm.Invoker, st store.Executor, cityInput string) string {
	known, err := st.DistinctCities(ctx)
	if err != nil || len(known) == 0 {
		return cityInput
	}

	for _, city := range known {
		if strings.EqualFold(city, cityInput) {
			return city
		}
	}

	prompt := fmt.Sprintf("Input city name: %s\nValid cities: %s\n\nCorrect city name:",
		cityInput, strings.Join(known, ", "))
	reply, err := gw.Invoke(ctx, prompt, promptCityNormalizer)
	if err != nil {
		applog.Error("fuzzy: normalize city %q: %v", cityInput, err)
		return cityInput
	}

	normalized := strings.TrimSpace(reply)
	for _, city := range known {
		if strings.EqualFold(city, normalized) {
			return city
		}
	}
	return cityInput
}

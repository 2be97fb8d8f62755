package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/planner.txt
	plannerRaw string

	//go:embed template/responder.txt
	responderRaw string
)

// PromptSet holds the rendered system prompts.
type PromptSet struct {
	Planner   string
	Responder string
}

// Vars are the values substituted into the prompt templates. Catalog is
// the pre-formatted product listing embedded verbatim in both prompts.
type Vars struct {
	Brand    string
	Currency string
	Catalog  []string
}

// Render substitutes the template placeholders once at startup. The
// rendered prompts are static for the process lifetime, like the catalog.
func Render(vars Vars) PromptSet {
	replacer := strings.NewReplacer(
		"{{brand}}", vars.Brand,
		"{{currency}}", vars.Currency,
		"{{catalog}}", strings.Join(vars.Catalog, "\n"),
	)
	return PromptSet{
		Planner:   strings.TrimSpace(replacer.Replace(plannerRaw)),
		Responder: strings.TrimSpace(replacer.Replace(responderRaw)),
	}
}

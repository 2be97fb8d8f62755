package contract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
)

// FallbackPlan is substituted whenever the planner output cannot be
// decoded. It maps to the default smalltalk branch of the actor.
func FallbackPlan() Plan {
	return Plan{Intent: IntentSmalltalk, Qty: 1}
}

// ParsePlan permissively decodes raw model output into a Plan. It strips
// markdown code fences, tolerates wrong-typed fields, and maps unknown or
// missing intents to smalltalk. It never fails.
func ParsePlan(raw string) Plan {
	raw = stripCodeFence(strings.TrimSpace(raw))
	if raw == "" {
		return FallbackPlan()
	}

	var loose struct {
		Intent    string         `json:"intent"`
		Criteria  map[string]any `json:"criteria"`
		ProductID any            `json:"product_id"`
		Qty       any            `json:"qty"`
		Question  string         `json:"question"`
		Customer  map[string]any `json:"customer"`
	}
	if err := json.Unmarshal([]byte(raw), &loose); err != nil {
		return FallbackPlan()
	}

	intent := Intent(strings.ToLower(strings.TrimSpace(loose.Intent)))
	if !intent.Known() {
		intent = IntentSmalltalk
	}

	return Plan{
		Intent:    intent,
		Criteria:  decodeCriteria(loose.Criteria),
		ProductID: strings.TrimSpace(asString(loose.ProductID)),
		Qty:       asInt(loose.Qty, 1),
		Question:  strings.TrimSpace(loose.Question),
		Customer: Customer{
			Name:    strings.TrimSpace(asString(loose.Customer["name"])),
			Address: strings.TrimSpace(asString(loose.Customer["address"])),
			Phone:   strings.TrimSpace(asString(loose.Customer["phone"])),
		},
	}
}

func decodeCriteria(raw map[string]any) catalogx.Criteria {
	if len(raw) == 0 {
		return catalogx.Criteria{}
	}
	crit := catalogx.Criteria{
		Gender:   strings.TrimSpace(asString(raw["gender"])),
		Occasion: strings.TrimSpace(asString(raw["occasion"])),
		Notes:    asStringSlice(raw["notes"]),
	}
	if v, ok := raw["max_price"]; ok && v != nil {
		price := asInt(v, 0)
		if price > 0 {
			crit.MaxPrice = &price
		}
	}
	return crit
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asInt(v any, fallback int) int {
	switch t := v.(type) {
	case nil:
		return fallback
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fallback
		}
		return n
	default:
		return fallback
	}
}

func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(asString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
		return nil
	default:
		return nil
	}
}

package actor

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	cartx "github.com/velourlabs/scentbot/agent/cart"
	catalogx "github.com/velourlabs/scentbot/agent/catalog"
	contractx "github.com/velourlabs/scentbot/agent/contract"
	faqx "github.com/velourlabs/scentbot/agent/faq"
)

// Actor dispatches a classified plan to exactly one deterministic
// operation. All failure is carried in the ToolResult; nothing escapes
// this boundary as an error or panic.
type Actor struct {
	catalog *catalogx.Catalog
	cart    *cartx.Service
	faq     *faqx.Service
}

var _ contractx.Actor = (*Actor)(nil)

func New(cat *catalogx.Catalog, cart *cartx.Service, faq *faqx.Service) (*Actor, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if cart == nil {
		return nil, errors.New("cart service is required")
	}
	if faq == nil {
		return nil, errors.New("faq service is required")
	}
	return &Actor{catalog: cat, cart: cart, faq: faq}, nil
}

func (a *Actor) Execute(ctx context.Context, userID, userText string, plan contractx.Plan) contractx.ToolResult {
	plan = a.overridePlan(userText, plan)

	switch plan.Intent {
	case contractx.IntentRecommend:
		return a.recommend(plan)
	case contractx.IntentAddToCart:
		return a.addToCart(ctx, userID, plan)
	case contractx.IntentUpdateCart:
		return a.updateCart(ctx, userID, userText, plan)
	case contractx.IntentViewCart:
		return a.viewCart(ctx, userID)
	case contractx.IntentCheckout:
		return a.checkout(ctx, userID, plan)
	case contractx.IntentFAQ:
		return a.answerFAQ(userText, plan)
	default:
		return a.enrich(contractx.ToolResult{OK: true, Type: "smalltalk"})
	}
}

// overridePlan re-checks the raw text for a removal request naming a
// catalog product and, if found, forces an update_cart with qty 0
// regardless of what the planner classified.
func (a *Actor) overridePlan(userText string, plan contractx.Plan) contractx.Plan {
	if !RemovalRequested(userText) {
		return plan
	}
	prod, ok := MentionedProduct(a.catalog.Products(), userText)
	if !ok {
		return plan
	}
	log.Debug().
		Str("product_id", prod.ID).
		Str("planned_intent", string(plan.Intent)).
		Msg("removal keywords override planner intent")
	return contractx.Plan{
		Intent:    contractx.IntentUpdateCart,
		ProductID: prod.ID,
		Qty:       0,
	}
}

func (a *Actor) recommend(plan contractx.Plan) contractx.ToolResult {
	results := a.catalog.Search(plan.Criteria)
	return a.enrich(contractx.ToolResult{
		OK:   true,
		Type: "search_results",
		Data: map[string]any{"results": results},
	})
}

func (a *Actor) addToCart(ctx context.Context, userID string, plan contractx.Plan) contractx.ToolResult {
	out, err := a.cart.Add(ctx, userID, plan.ProductID, plan.Qty, false)
	if err != nil {
		return a.enrich(failure("cart_add", err))
	}
	return contractx.ToolResult{
		OK:   true,
		Type: "cart_add",
		Data: map[string]any{
			"cart":   out.Cart,
			"action": out.Action,
			"added": map[string]any{
				"name":     out.Added.Name,
				"price":    out.Added.FormattedPrice(),
				"occasion": strings.Join(out.Added.Occasions, ", "),
			},
		},
	}
}

func (a *Actor) updateCart(ctx context.Context, userID, userText string, plan contractx.Plan) contractx.ToolResult {
	qty := plan.Qty
	if RemovalRequested(userText) {
		qty = 0
	}

	// "set it to 2" / "only want one" means an exact quantity, which is
	// the set-semantics add rather than a line update.
	if qty > 0 && SetQuantityRequested(userText) {
		out, err := a.cart.Add(ctx, userID, plan.ProductID, qty, true)
		if err != nil {
			return a.enrich(failure("cart_update", err))
		}
		return contractx.ToolResult{
			OK:   true,
			Type: "cart_update",
			Data: map[string]any{"cart": out.Cart, "action": out.Action},
		}
	}

	out, err := a.cart.Update(ctx, userID, plan.ProductID, qty)
	if err != nil {
		return a.enrich(failure("cart_update", err))
	}
	return contractx.ToolResult{
		OK:   true,
		Type: "cart_update",
		Data: map[string]any{"cart": out.Cart, "action": out.Action},
	}
}

func (a *Actor) viewCart(ctx context.Context, userID string) contractx.ToolResult {
	out, err := a.cart.View(ctx, userID)
	if err != nil {
		return a.enrich(failure("cart_view", err))
	}
	return a.enrich(contractx.ToolResult{
		OK:   true,
		Type: "cart_view",
		Data: map[string]any{"cart": out.Cart, "total": out.Total},
	})
}

func (a *Actor) checkout(ctx context.Context, userID string, plan contractx.Plan) contractx.ToolResult {
	order, err := a.cart.Checkout(ctx, userID, plan.Customer)
	if err != nil {
		return failure("order", err)
	}
	return contractx.ToolResult{
		OK:   true,
		Type: "order",
		Data: map[string]any{"order": order},
	}
}

func (a *Actor) answerFAQ(userText string, plan contractx.Plan) contractx.ToolResult {
	question := plan.Question
	if strings.TrimSpace(question) == "" {
		question = userText
	}
	return a.enrich(contractx.ToolResult{
		OK:   true,
		Type: "faq_answer",
		Data: map[string]any{"answer": a.faq.Answer(question)},
	})
}

// enrich attaches the full formatted catalog and the exact price table so
// the responder model always has real product data and cannot invent
// prices.
func (a *Actor) enrich(res contractx.ToolResult) contractx.ToolResult {
	if res.Data == nil {
		res.Data = make(map[string]any, 2)
	}
	res.Data["catalog"] = a.catalog.Lines()
	res.Data["prices"] = a.catalog.PriceTable()
	return res
}

func failure(resultType string, err error) contractx.ToolResult {
	return contractx.ToolResult{
		OK:    false,
		Type:  resultType,
		Error: err.Error(),
	}
}

package contract

import (
	catalogx "github.com/velourlabs/scentbot/agent/catalog"
)

type AgentType string

const (
	AgentTypePlanner   AgentType = "planner"
	AgentTypeResponder AgentType = "responder"
)

// Intent is the classified action the user wants performed.
type Intent string

const (
	IntentRecommend  Intent = "recommend"
	IntentFAQ        Intent = "faq"
	IntentAddToCart  Intent = "add_to_cart"
	IntentUpdateCart Intent = "update_cart"
	IntentViewCart   Intent = "view_cart"
	IntentCheckout   Intent = "checkout"
	IntentSmalltalk  Intent = "smalltalk"
)

func (i Intent) Known() bool {
	switch i {
	case IntentRecommend, IntentFAQ, IntentAddToCart, IntentUpdateCart,
		IntentViewCart, IntentCheckout, IntentSmalltalk:
		return true
	}
	return false
}

// Customer is the contact block required at checkout.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// Plan is the structured action decoded from the planner model. Field
// presence is not guaranteed; downstream code must treat it as untrusted
// input. Unknown or missing intents decode as smalltalk.
type Plan struct {
	Intent    Intent            `json:"intent"`
	Criteria  catalogx.Criteria `json:"criteria,omitempty"`
	ProductID string            `json:"product_id,omitempty"`
	Qty       int               `json:"qty,omitempty"`
	Question  string            `json:"question,omitempty"`
	Customer  Customer          `json:"customer,omitempty"`
}

// ToolResult is the structured output of the dispatched operation, passed
// to the responder as context. Failure is always represented here, never
// as an error crossing the actor boundary.
type ToolResult struct {
	OK    bool           `json:"ok"`
	Type  string         `json:"type,omitempty"`
	Error string         `json:"error,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// ReplyRequest carries everything the responder needs to phrase the final
// natural-language reply.
type ReplyRequest struct {
	UserText   string     `json:"user_text"`
	Intent     Intent     `json:"intent"`
	ToolResult ToolResult `json:"tool_result"`
}

package planner

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

// Planner asks the model to classify the user's message into a structured
// action. Malformed model output degrades to the smalltalk fallback plan
// and is never surfaced as an error; only transport-level failure is.
type Planner struct {
	runner       compose.Runnable[map[string]any, *schema.Message]
	systemPrompt string
}

var _ contractx.Planner = (*Planner)(nil)

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Planner, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: planner system prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileModelGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile planner graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Planner{runner: runner, systemPrompt: systemPrompt}, nil
}

func (p *Planner) Plan(ctx context.Context, userText string) (contractx.Plan, error) {
	if strings.TrimSpace(userText) == "" {
		return contractx.Plan{}, fmt.Errorf("%w: user text is required", contractx.ErrValidation)
	}

	msg, err := p.runner.Invoke(ctx, map[string]any{
		"system": p.systemPrompt,
		"input":  userText,
	})
	if err != nil {
		return contractx.Plan{}, fmt.Errorf("%w: planner invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return contractx.FallbackPlan(), nil
	}

	plan := contractx.ParsePlan(msg.Content)
	if plan.Intent == contractx.IntentSmalltalk {
		log.Debug().Str("content", msg.Content).Msg("plan decoded as smalltalk")
	}
	return plan, nil
}

package pipelinenode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

// PlanIntent asks the planner to classify the message. A failed model
// call degrades to the smalltalk fallback so a planner outage never kills
// the request; the responder still gets catalog context to chat with.
func PlanIntent(ctx context.Context, in *GraphState, planner contractx.Planner) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	plan, err := planner.Plan(ctx, in.Text)
	if err != nil {
		log.Warn().Err(err).Str("user_id", in.UserID).Msg("planner failed, degrading to smalltalk")
		plan = contractx.FallbackPlan()
	}

	in.Plan = plan
	in.Intent = plan.Intent
	return in, nil
}

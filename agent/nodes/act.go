package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

// Act dispatches the plan. The actor never errors; any domain failure is
// carried inside the ToolResult.
func Act(ctx context.Context, in *GraphState, actor contractx.Actor) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.ToolResult = actor.Execute(ctx, in.UserID, in.Text, in.Plan)
	return in, nil
}

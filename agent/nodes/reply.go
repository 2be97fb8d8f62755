package pipelinenode

import (
	"context"
	"fmt"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

// Reply asks the responder to phrase the final message. Responder failure
// propagates; the transport layer owns the generic apology.
func Reply(ctx context.Context, in *GraphState, responder contractx.Responder) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply, err := responder.Respond(ctx, contractx.ReplyRequest{
		UserText:   in.Text,
		Intent:     in.Intent,
		ToolResult: in.ToolResult,
	})
	if err != nil {
		return nil, err
	}

	in.Reply = reply
	return in, nil
}

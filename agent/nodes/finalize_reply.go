package pipelinenode

import (
	"fmt"
	"strings"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: responder produced empty reply", contractx.ErrValidation)
	}
	return GraphOutput{Reply: reply}, nil
}

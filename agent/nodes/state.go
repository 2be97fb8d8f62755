package pipelinenode

import (
	"errors"
	"strings"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

var ErrInvalidMessage = errors.New("message is empty")

// DefaultUserID is assumed when the transport could not supply a sender.
const DefaultUserID = "guest"

type GraphInput struct {
	UserID string
	Text   string
}

type GraphOutput struct {
	Reply string
}

// GraphState is the per-request scratch record. Each pipeline stage reads
// and augments fields; none removes them. Discarded after the reply.
type GraphState struct {
	UserID string
	Text   string

	Plan       contractx.Plan
	Intent     contractx.Intent
	ToolResult contractx.ToolResult

	Reply string
}

func ValidateRequest(in GraphInput) (*GraphState, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = DefaultUserID
	}

	return &GraphState{
		UserID: userID,
		Text:   text,
	}, nil
}

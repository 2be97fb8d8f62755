package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/velourlabs/scentbot/agent/contract"
)

// Responder phrases the final natural-language reply from the user text,
// the classified intent and the serialized tool result. The model's text
// is returned verbatim apart from whitespace trimming; transport failure
// propagates to the caller.
type Responder struct {
	runner       compose.Runnable[map[string]any, *schema.Message]
	systemPrompt string
}

var _ contractx.Responder = (*Responder)(nil)

func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Responder, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: responder system prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileModelGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile responder graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Responder{runner: runner, systemPrompt: systemPrompt}, nil
}

func (r *Responder) Respond(ctx context.Context, req contractx.ReplyRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: marshal responder payload: %v", contractx.ErrValidation, err)
	}

	msg, err := r.runner.Invoke(ctx, map[string]any{
		"system": r.systemPrompt,
		"input":  string(payload),
	})
	if err != nil {
		return "", fmt.Errorf("%w: responder invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: responder returned no message", contractx.ErrSchemaViolation)
	}

	reply := strings.TrimSpace(msg.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: responder returned empty reply", contractx.ErrSchemaViolation)
	}
	return reply, nil
}

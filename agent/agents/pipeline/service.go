package pipeline

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/velourlabs/scentbot/agent/contract"
	nodex "github.com/velourlabs/scentbot/agent/nodes"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

// Pipeline is the strictly linear plan -> act -> reply orchestrator.
// One invocation handles exactly one inbound message; no state crosses
// invocations except through the cart store the actor mutates.
type Pipeline struct {
	planner   contractx.Planner
	actor     contractx.Actor
	responder contractx.Responder

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(planner contractx.Planner, actor contractx.Actor, responder contractx.Responder) (*Pipeline, error) {
	if planner == nil {
		return nil, errors.New("planner is required")
	}
	if actor == nil {
		return nil, errors.New("actor is required")
	}
	if responder == nil {
		return nil, errors.New("responder is required")
	}

	p := &Pipeline{
		planner:   planner,
		actor:     actor,
		responder: responder,
	}

	graphRunner, err := p.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.graphRunner = graphRunner

	return p, nil
}

func (p *Pipeline) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	out, err := p.graphRunner.Invoke(ctx, nodex.GraphInput{
		UserID: userID,
		Text:   text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

package contract

import "context"

type Planner interface {
	Plan(ctx context.Context, userText string) (Plan, error)
}

type Responder interface {
	Respond(ctx context.Context, req ReplyRequest) (string, error)
}

// Actor dispatches a plan to exactly one deterministic operation. It must
// never return an error past its boundary; failure is carried in the
// ToolResult.
type Actor interface {
	Execute(ctx context.Context, userID, userText string, plan Plan) ToolResult
}

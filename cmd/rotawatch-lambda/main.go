// Command rotawatch-lambda runs one rotation check per Lambda invocation,
// typically triggered by an EventBridge schedule. The snapshot store must
// be durable across invocations (dynamodb, redis, postgres or mongo).
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/internal/logging"
	"github.com/xraph/rotawatch/internal/setup"
)

// Response is returned to the invoker.
type Response struct {
	Changed    bool                `json:"changed"`
	RotationID string              `json:"rotation_id,omitempty"`
	Status     rotawatch.RunStatus `json:"status,omitempty"`
}

func main() {
	lambda.Start(handler)
}

func handler(ctx context.Context) (Response, error) {
	cfg, err := rotawatch.LoadFileConfig(os.Getenv("ROTAWATCH_CONFIG"))
	if err != nil {
		return Response{}, err
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	w, err := setup.Build(ctx, cfg, nil, logger)
	if err != nil {
		return Response{}, err
	}
	defer w.Store().Close()

	// The process may be fresh, so the stored snapshot decides whether the
	// rotation is new.
	changed, err := w.Check(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "check failed", "error", err)
		return Response{}, err
	}

	resp := Response{Changed: changed}
	if run := w.LastRun(); run != nil {
		resp.RotationID = run.RotationID
		resp.Status = run.Status
	}
	logger.InfoContext(ctx, "invocation done", "changed", resp.Changed, "status", resp.Status)
	return resp, nil
}

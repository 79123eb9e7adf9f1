package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/rotawatch/id"
	"github.com/xraph/rotawatch/observability"
)

// NotifierConfig holds notifier configuration.
type NotifierConfig struct {
	RequestTimeout time.Duration
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
}

// Notifier fans a message out to every configured target.
type Notifier struct {
	targets []Target
	sender  *Sender
	config  NotifierConfig
	logger  *slog.Logger
}

// NewNotifier creates a notifier for the given targets.
func NewNotifier(targets []Target, cfg NotifierConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		targets: append([]Target(nil), targets...),
		sender:  NewSender(cfg.RequestTimeout),
		config:  cfg,
		logger:  logger,
	}
}

// Targets returns the configured targets.
func (n *Notifier) Targets() []Target {
	return append([]Target(nil), n.targets...)
}

// Notify uploads msg to each target in order and returns one result per
// target. Every target is attempted regardless of earlier failures.
func (n *Notifier) Notify(ctx context.Context, msg Message) []Result {
	results := make([]Result, 0, len(n.targets))
	for _, t := range n.targets {
		results = append(results, n.deliver(ctx, t, msg))
	}
	return results
}

func (n *Notifier) deliver(ctx context.Context, t Target, msg Message) Result {
	deliveryID := id.NewDeliveryID()
	ctx, span := n.config.Tracer.StartDeliverySpan(ctx, deliveryID.String(), t.Label())

	res := n.sender.Send(ctx, t, msg)
	res.DeliveryID = deliveryID
	res.Outcome = Classify(res)

	n.config.Metrics.RecordDelivery(string(res.Outcome), float64(res.LatencyMs)/1000.0)

	switch res.Outcome {
	case OutcomeDelivered:
		n.logger.InfoContext(ctx, "summary delivered",
			"delivery_id", deliveryID, "target", res.Target, "status", res.StatusCode, "latency_ms", res.LatencyMs)
	case OutcomeGone:
		n.logger.WarnContext(ctx, "webhook target gone",
			"delivery_id", deliveryID, "target", res.Target, "status", res.StatusCode)
	default:
		n.logger.ErrorContext(ctx, "summary delivery failed",
			"delivery_id", deliveryID, "target", res.Target, "status", res.StatusCode, "error", res.Error)
	}

	n.config.Tracer.EndDeliverySpan(span, res.StatusCode, res.LatencyMs, res.Error)
	return res
}

package delivery_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/id"
	"github.com/xraph/rotawatch/observability"
)

func TestNotifyAttemptsEveryTarget(t *testing.T) {
	okSrv, okUploads := newReceiver(t, http.StatusOK)
	goneSrv, _ := newReceiver(t, http.StatusGone)
	lastSrv, lastUploads := newReceiver(t, http.StatusOK)

	n := delivery.NewNotifier([]delivery.Target{
		{Name: "first", URL: okSrv.URL},
		{Name: "deleted", URL: goneSrv.URL},
		{Name: "dead", URL: "http://127.0.0.1:1"},
		{Name: "last", URL: lastSrv.URL},
	}, delivery.NotifierConfig{
		RequestTimeout: 2 * time.Second,
		Metrics:        observability.NewMetrics(prometheus.NewRegistry()),
		Tracer:         observability.NewTracer(),
	}, nil)

	results := n.Notify(context.Background(), newTestMessage())

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	want := []delivery.Outcome{
		delivery.OutcomeDelivered,
		delivery.OutcomeGone,
		delivery.OutcomeFailed,
		delivery.OutcomeDelivered,
	}
	for i, res := range results {
		if res.Outcome != want[i] {
			t.Errorf("results[%d] (%s): got %s, want %s", i, res.Target, res.Outcome, want[i])
		}
		if res.DeliveryID.Prefix() != id.PrefixDelivery {
			t.Errorf("results[%d]: delivery id %q", i, res.DeliveryID)
		}
	}

	if len(okUploads()) != 1 || len(lastUploads()) != 1 {
		t.Fatal("healthy targets should each receive exactly one upload")
	}
}

func TestNotifyWithoutTargets(t *testing.T) {
	n := delivery.NewNotifier(nil, delivery.NotifierConfig{RequestTimeout: time.Second}, nil)

	if results := n.Notify(context.Background(), newTestMessage()); len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

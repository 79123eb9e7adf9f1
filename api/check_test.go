package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/api"
	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/delivery"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store/memory"
)

// hangupStore cancels the request context once the snapshot is saved,
// as if the caller disconnected mid-run.
type hangupStore struct {
	*memory.Store
	cancel context.CancelFunc
}

func (s hangupStore) Save(ctx context.Context, snap *rotation.Snapshot) error {
	err := s.Store.Save(ctx, snap)
	s.cancel()
	return err
}

func TestCheckSurvivesClientDisconnect(t *testing.T) {
	rotationSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rotation/latest" {
			w.Write([]byte(`{"id":"r1"}`))
			return
		}
		w.Write([]byte(`["m1"]`))
	}))
	defer rotationSrv.Close()

	var uploads atomic.Int32
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	cat, err := catalog.New(map[string]catalog.RawEntry{"m1": {Name: "lighthouse"}})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := hangupStore{Store: memory.New(), cancel: cancel}
	w, err := rotawatch.New(
		rotawatch.WithCatalog(cat),
		rotawatch.WithStore(st),
		rotawatch.WithPools(pool.Pool{Key: "SLOW", Title: "Slow"}),
		rotawatch.WithAPI(rotationSrv.URL+"/rotation/latest", rotationSrv.URL+"/mappool/{pool}"),
		rotawatch.WithImageDir(t.TempDir()),
		rotawatch.WithTargets(delivery.Target{Name: "main", URL: hook.URL}),
		rotawatch.WithDeliveryTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader("")).WithContext(ctx)
	rec := httptest.NewRecorder()
	api.NewHandler(w, nil, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if got := uploads.Load(); got != 1 {
		t.Fatalf("uploads: got %d, want 1", got)
	}
	run := w.LastRun()
	if run == nil || run.Status != rotawatch.RunCompleted {
		t.Fatalf("last run: %+v", run)
	}
	if len(run.Deliveries) != 1 || run.Deliveries[0].Outcome != delivery.OutcomeDelivered {
		t.Fatalf("deliveries: %+v", run.Deliveries)
	}
}

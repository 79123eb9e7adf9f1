package rotation_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/rotation"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(map[string]catalog.RawEntry{
		"m1": {Name: "lighthouse"},
		"m2": {Name: "aquarium", Festival: catalog.FestivalSummer},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func newAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *rotation.Fetcher) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := rotation.NewFetcher(rotation.FetcherConfig{
		LatestURL: srv.URL + "/rotation/latest",
		PoolURL:   srv.URL + "/mappool/{pool}",
	}, newTestCatalog(t))
	return srv, f
}

func TestLatestRotationID(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rotation/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "rotawatch/1.0" {
			t.Errorf("user agent: got %q", ua)
		}
		w.Write([]byte(`{"id":"r42"}`))
	})

	id, err := f.LatestRotationID(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if id != "r42" {
		t.Fatalf("got %q", id)
	}
}

func TestLatestRotationIDEmpty(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":""}`))
	})

	if _, err := f.LatestRotationID(context.Background()); !errors.Is(err, rotation.ErrEmptyRotationID) {
		t.Fatalf("expected ErrEmptyRotationID, got %v", err)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, err := f.LatestRotationID(context.Background())
	if !errors.Is(err, rotation.ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error should carry the status code: %v", err)
	}
}

func TestFetchNames(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mappool/BEDWARS_8TEAMS_FAST" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`["m2","m1"]`))
	})

	names, err := f.FetchNames(context.Background(), "BEDWARS_8TEAMS_FAST")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"Aquarium", "Lighthouse"}) {
		t.Fatalf("got %v", names)
	}
}

func TestFetchNamesUnknownMap(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`["m1","m9"]`))
	})

	_, err := f.FetchNames(context.Background(), "P")
	if !errors.Is(err, catalog.ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
	if !strings.Contains(err.Error(), "m9") {
		t.Fatalf("error should name the offending id: %v", err)
	}
}

func TestFetchPoolMalformedBody(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	})

	if _, err := f.FetchPool(context.Background(), "P"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchCancelledContext(t *testing.T) {
	_, f := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"r1"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.LatestRotationID(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

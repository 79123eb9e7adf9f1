package storage_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/xraph/rotawatch/storage"
)

func TestLocalPut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	l, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := l.Put(ctx, "rotation.png", []byte("first"), "image/png"); err != nil {
		t.Fatal(err)
	}
	if err := l.Put(ctx, "rotation.png", []byte("second"), "image/png"); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(l.Path("rotation.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("got %q", got)
	}
	if err := l.Ping(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestLocalRejectsEscapingKey(t *testing.T) {
	l, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	err = l.Put(context.Background(), "../escape.png", []byte("x"), "image/png")
	if !errors.Is(err, storage.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestS3Put(t *testing.T) {
	var mu sync.Mutex
	var method, path, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := storage.NewS3(storage.S3Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		Bucket:    "maps",
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "testsecret",
		Prefix:    "rotawatch",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Put(context.Background(), "rotation.png", []byte("png"), "image/png"); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut {
		t.Fatalf("method: got %s", method)
	}
	if path != "/maps/rotawatch/rotation.png" {
		t.Fatalf("path: got %s", path)
	}
	if contentType != "image/png" {
		t.Fatalf("content type: got %q", contentType)
	}
}

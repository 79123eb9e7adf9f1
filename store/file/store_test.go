package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	rotawatch "github.com/xraph/rotawatch"
	"github.com/xraph/rotawatch/rotation"
	"github.com/xraph/rotawatch/store/file"
)

func TestLoadMissing(t *testing.T) {
	s := file.New(filepath.Join(t.TempDir(), "snap.json"))

	if _, err := s.Load(context.Background()); !errors.Is(err, rotawatch.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := file.New(filepath.Join(dir, "snap.json"))

	snap := rotation.NewSnapshot("r1")
	snap.Pools["BEDWARS_8TEAMS_FAST"] = []string{"Lighthouse", "Aquarium"}

	if err := s.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.RotationID != "r1" || !reflect.DeepEqual(got.Pools, snap.Pools) {
		t.Fatalf("got %+v", got)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n    \"BEDWARS_8TEAMS_FAST\": [\n        \"Lighthouse\"") {
		t.Fatalf("expected 4-space indentation, got:\n%s", raw)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := file.New(filepath.Join(t.TempDir(), "snap.json"))

	first := rotation.NewSnapshot("r1")
	first.Pools["P"] = []string{"A", "B", "C"}
	second := rotation.NewSnapshot("r2")
	second.Pools["P"] = []string{"D"}

	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.RotationID != "r2" || !reflect.DeepEqual(got.Pools["P"], []string{"D"}) {
		t.Fatalf("got %+v", got)
	}
}

func TestSaveFailureKeepsOldContent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	s := file.New(path)

	old := rotation.NewSnapshot("r1")
	old.Pools["P"] = []string{"A"}
	if err := s.Save(ctx, old); err != nil {
		t.Fatal(err)
	}

	// A directory where the temp file should go makes the write fail.
	broken := file.New(filepath.Join(dir, "missing", "snap.json"))
	if err := broken.Save(ctx, rotation.NewSnapshot("r2")); err == nil {
		t.Fatal("expected save into a missing directory to fail")
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.RotationID != "r1" {
		t.Fatalf("old snapshot should be intact, got %q", got.RotationID)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := os.WriteFile(path, []byte(`{"P": ["A"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := file.New(path).Load(context.Background())
	if !errors.Is(err, rotation.ErrMalformedSnapshot) {
		t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
	}
}

func TestPing(t *testing.T) {
	dir := t.TempDir()
	if err := file.New(filepath.Join(dir, "snap.json")).Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := file.New(filepath.Join(dir, "nope", "snap.json")).Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail for a missing directory")
	}
}

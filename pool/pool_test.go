package pool_test

import (
	"testing"

	"github.com/xraph/rotawatch/pool"
)

func TestLines(t *testing.T) {
	head, sub := pool.Pool{Key: "X", Title: "8 Teams\nQuick & Rushy"}.Lines()
	if head != "8 Teams" || sub != "Quick & Rushy" {
		t.Fatalf("got %q / %q", head, sub)
	}

	head, sub = pool.Pool{Key: "X", Title: "Solo"}.Lines()
	if head != "Solo" || sub != "" {
		t.Fatalf("got %q / %q", head, sub)
	}
}

func TestDefaultOrder(t *testing.T) {
	keys := pool.Keys(pool.Default())
	want := []string{"BEDWARS_8TEAMS_SLOW", "BEDWARS_8TEAMS_FAST", "BEDWARS_4TEAMS_SLOW", "BEDWARS_4TEAMS_FAST"}
	if len(keys) != len(want) {
		t.Fatalf("got %d pools", len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d]: got %q, want %q", i, keys[i], want[i])
		}
	}
}

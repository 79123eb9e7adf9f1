package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xraph/rotawatch/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(map[string]catalog.RawEntry{
		"lighthouse":   {Name: "lighthouse", Festival: catalog.FestivalNone},
		"aquarium":     {Name: "aquarium", Festival: catalog.FestivalSummer},
		"kings_rest":   {Name: "king's rest", Festival: catalog.FestivalWinter},
		"pumpkin_path": {Name: "pumpkin path", Festival: catalog.FestivalHalloween},
		"plain":        {Name: "plain"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog(t)

	e, err := c.Lookup("kings_rest")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "King's Rest" {
		t.Fatalf("name: got %q, want %q", e.Name, "King's Rest")
	}
	if e.Festival != catalog.FestivalWinter {
		t.Fatalf("festival: got %q", e.Festival)
	}

	plain, err := c.Lookup("plain")
	if err != nil {
		t.Fatal(err)
	}
	if plain.Festival != catalog.FestivalNone {
		t.Fatalf("empty festival should default to NONE, got %q", plain.Festival)
	}

	if _, err := c.Lookup("missing"); !errors.Is(err, catalog.ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
}

func TestCatalogByName(t *testing.T) {
	c := testCatalog(t)

	e, err := c.ByName("Pumpkin Path")
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != "pumpkin_path" {
		t.Fatalf("got %q", e.ID)
	}

	// Reverse lookup ignores case, as the catalog stores lowercase names.
	if _, err := c.ByName("pumpkin path"); err != nil {
		t.Fatalf("lowercase lookup: %v", err)
	}

	if _, err := c.ByName("Nowhere"); !errors.Is(err, catalog.ErrUnknownName) {
		t.Fatalf("expected ErrUnknownName, got %v", err)
	}
}

func TestCatalogRejectsDuplicateNames(t *testing.T) {
	_, err := catalog.New(map[string]catalog.RawEntry{
		"a": {Name: "twin peaks"},
		"b": {Name: "Twin Peaks"},
	})
	if !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestCatalogRejectsUnknownFestival(t *testing.T) {
	_, err := catalog.New(map[string]catalog.RawEntry{
		"a": {Name: "a", Festival: "CARNIVAL"},
	})
	if !errors.Is(err, catalog.ErrInvalidFestival) {
		t.Fatalf("expected ErrInvalidFestival, got %v", err)
	}
}

func TestCatalogRejectsEmpty(t *testing.T) {
	if _, err := catalog.New(nil); !errors.Is(err, catalog.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestCatalogNamesPreservesOrder(t *testing.T) {
	c := testCatalog(t)

	names, err := c.Names([]string{"plain", "aquarium", "lighthouse"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Plain", "Aquarium", "Lighthouse"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}

	_, err = c.Names([]string{"plain", "ghost"})
	if !errors.Is(err, catalog.ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
}

func TestCatalogEntriesSorted(t *testing.T) {
	c := testCatalog(t)

	entries := c.Entries()
	if len(entries) != c.Len() {
		t.Fatalf("got %d entries, want %d", len(entries), c.Len())
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID > entries[i].ID {
			t.Fatalf("entries not sorted at %d: %q > %q", i, entries[i-1].ID, entries[i].ID)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.json")
	doc := `{
		"lighthouse": {"name": "lighthouse", "festival": "NONE"},
		"frost": {"name": "frost", "festival": "WINTER"}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("got %d entries", c.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"lighthouse":       "Lighthouse",
		"king's landing":   "King's Landing",
		"o’neil park":      "O’neil Park",
		"ice-cold":         "Ice-Cold",
		"already Upper":    "Already Upper",
		"2fort remastered": "2fort Remastered",
		"":                 "",
	}
	for in, want := range cases {
		if got := catalog.Capitalize(in); got != want {
			t.Errorf("Capitalize(%q): got %q, want %q", in, got, want)
		}
	}
}

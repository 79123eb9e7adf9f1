// Package catalog holds the static map catalog: an immutable table from
// opaque map identifiers to display names and festival tags.
//
// The catalog is built once at startup and injected into the components
// that need it. A reverse index from display name to entry is precomputed
// when the catalog is built; two entries sharing a display name make the
// catalog invalid, since the reverse lookup could not pick between them.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by catalog operations.
var (
	// ErrUnknownMap is returned when a map identifier is not in the catalog.
	ErrUnknownMap = errors.New("catalog: unknown map id")

	// ErrUnknownName is returned when a display name does not resolve to an entry.
	ErrUnknownName = errors.New("catalog: unknown map name")

	// ErrDuplicateName is returned when two entries share a display name.
	ErrDuplicateName = errors.New("catalog: duplicate map name")

	// ErrInvalidFestival is returned when an entry carries an unrecognised festival tag.
	ErrInvalidFestival = errors.New("catalog: invalid festival")

	// ErrEmpty is returned when a catalog has no entries.
	ErrEmpty = errors.New("catalog: no entries")
)

// Festival is the seasonal event a map belongs to. It selects the colour a
// map name is drawn in.
type Festival string

// Known festival tags.
const (
	FestivalNone      Festival = "NONE"
	FestivalLunar     Festival = "LUNAR"
	FestivalEaster    Festival = "EASTER"
	FestivalSummer    Festival = "SUMMER"
	FestivalHalloween Festival = "HALLOWEEN"
	FestivalWinter    Festival = "WINTER"
)

// Festivals lists every valid festival tag.
var Festivals = []Festival{
	FestivalNone,
	FestivalLunar,
	FestivalEaster,
	FestivalSummer,
	FestivalHalloween,
	FestivalWinter,
}

// Valid reports whether f is a known festival tag.
func (f Festival) Valid() bool {
	for _, known := range Festivals {
		if f == known {
			return true
		}
	}
	return false
}

// RawEntry is one record of the catalog file, keyed by map ID.
type RawEntry struct {
	Name     string   `json:"name"`
	Festival Festival `json:"festival"`
}

// MapEntry is a resolved catalog entry.
type MapEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Festival Festival `json:"festival"`
}

// Catalog is the read-only map lookup table.
type Catalog struct {
	entries map[string]MapEntry
	byName  map[string]string // folded display name -> map ID
}

// New builds a catalog from raw entries. Names are capitalised for display.
// An empty festival tag defaults to NONE.
func New(raw map[string]RawEntry) (*Catalog, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		entries: make(map[string]MapEntry, len(raw)),
		byName:  make(map[string]string, len(raw)),
	}

	// Sorted IDs keep the duplicate error deterministic.
	ids := make([]string, 0, len(raw))
	for mapID := range raw {
		ids = append(ids, mapID)
	}
	sort.Strings(ids)

	for _, mapID := range ids {
		r := raw[mapID]
		festival := r.Festival
		if festival == "" {
			festival = FestivalNone
		}
		if !festival.Valid() {
			return nil, fmt.Errorf("%w: %q for map %q", ErrInvalidFestival, festival, mapID)
		}

		entry := MapEntry{
			ID:       mapID,
			Name:     Capitalize(strings.TrimSpace(r.Name)),
			Festival: festival,
		}

		key := foldName(entry.Name)
		if other, ok := c.byName[key]; ok {
			return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateName, entry.Name, other, mapID)
		}

		c.entries[mapID] = entry
		c.byName[key] = mapID
	}

	return c, nil
}

// Lookup returns the entry for a map ID.
func (c *Catalog) Lookup(mapID string) (MapEntry, error) {
	e, ok := c.entries[mapID]
	if !ok {
		return MapEntry{}, fmt.Errorf("%w: %q", ErrUnknownMap, mapID)
	}
	return e, nil
}

// ByName resolves a display name back to its entry. Matching ignores case.
func (c *Catalog) ByName(name string) (MapEntry, error) {
	mapID, ok := c.byName[foldName(name)]
	if !ok {
		return MapEntry{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return c.entries[mapID], nil
}

// Names translates map IDs to display names, preserving order. The first
// unknown ID aborts the translation.
func (c *Catalog) Names(ids []string) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, mapID := range ids {
		e, err := c.Lookup(mapID)
		if err != nil {
			return nil, err
		}
		names = append(names, e.Name)
	}
	return names, nil
}

// Entries returns every entry ordered by ID.
func (c *Catalog) Entries() []MapEntry {
	out := make([]MapEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package render

import (
	"reflect"
	"testing"

	"github.com/xraph/rotawatch/catalog"
	"github.com/xraph/rotawatch/pool"
	"github.com/xraph/rotawatch/rotation"
)

func newLayoutRenderer(t *testing.T) *Renderer {
	t.Helper()
	cat, err := catalog.New(map[string]catalog.RawEntry{
		"foo": {Name: "Foo", Festival: catalog.FestivalSummer},
		"bar": {Name: "Bar", Festival: catalog.FestivalWinter},
		"baz": {Name: "Baz"},
		"qux": {Name: "Qux", Festival: catalog.FestivalHalloween},
	})
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(DefaultConfig(), cat)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPanelLinesChanges(t *testing.T) {
	r := newLayoutRenderer(t)
	lines, err := r.panelLines(Panel{
		Pool:    pool.Pool{Key: "P", Title: "P"},
		Diff:    rotation.Difference{Added: []string{"Foo", "Bar"}, Removed: []string{"Baz"}},
		Current: []string{"Qux", "Foo", "Bar"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []textLine{
		{dy: changesOffset, segments: []segment{{"Changes:", White}}},
		{dy: changesOffset + lineStep, segments: []segment{{"+ ", Green}, {"Bar", Red}}},
		{dy: changesOffset + 2*lineStep, segments: []segment{{"+ ", Green}, {"Foo", Yellow}}},
		{dy: changesOffset + 3*lineStep, segments: []segment{{"- ", Red}, {"Baz", Gray}}},
		// One line step separates the changes from the rotation header.
		{dy: changesOffset + 4*lineStep, segments: []segment{{"Current Rotation:", White}}},
		{dy: changesOffset + 4*lineStep + listStep/2 + listStep, font: listFont, segments: []segment{{"Bar", Red}}},
		{dy: changesOffset + 4*lineStep + listStep/2 + 2*listStep, font: listFont, segments: []segment{{"Foo", Yellow}}},
		{dy: changesOffset + 4*lineStep + listStep/2 + 3*listStep, font: listFont, segments: []segment{{"Qux", Gold}}},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines:\n got %+v\nwant %+v", lines, want)
	}
}

func TestPanelLinesNoChanges(t *testing.T) {
	r := newLayoutRenderer(t)
	lines, err := r.panelLines(Panel{
		Pool:    pool.Pool{Key: "P", Title: "P"},
		Current: []string{"Baz"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []textLine{
		{dy: changesOffset, segments: []segment{{"Changes:", White}}},
		{dy: changesOffset + lineStep, segments: []segment{{"No changes.", Aqua}}},
		{dy: changesOffset + 2*lineStep, segments: []segment{{"Current Rotation:", White}}},
		{dy: changesOffset + 2*lineStep + listStep/2 + listStep, font: listFont, segments: []segment{{"Baz", Gray}}},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines:\n got %+v\nwant %+v", lines, want)
	}
}

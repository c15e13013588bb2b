package graph

import (
	"encoding/json"
	"testing"
)

func TestFlattenRowsEmpty(t *testing.T) {
	t.Parallel()

	if got := FlattenRows(nil); got != "{}" {
		t.Fatalf("FlattenRows(nil) = %q, want {}", got)
	}
	if got := FlattenRows([]Row{}); got != "{}" {
		t.Fatalf("FlattenRows(empty) = %q, want {}", got)
	}
}

func TestFlattenRowsSingleKeylessRowIsRawValue(t *testing.T) {
	t.Parallel()

	got := FlattenRows([]Row{{Value: "x", Type: TypeString}})
	if got != "x" {
		t.Fatalf("FlattenRows = %q, want x (no JSON quoting)", got)
	}

	got = FlattenRows([]Row{{Value: json.Number("42"), Type: TypeNumber}})
	if got != "42" {
		t.Fatalf("FlattenRows = %q, want 42", got)
	}
}

func TestFlattenRowsKeepsScalarFieldsOnly(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Key: "name", Value: "demo", Type: TypeString},
		{Key: "count", Value: json.Number("3"), Type: TypeNumber},
		{Key: "tags", Value: []interface{}{"a"}, Type: TypeArray},
		{Key: "meta", Value: map[string]interface{}{"x": 1}, Type: TypeObject},
	}

	got := FlattenRows(rows)
	want := "{\n  \"count\": 3,\n  \"name\": \"demo\"\n}"
	if got != want {
		t.Fatalf("FlattenRows = %q, want %q", got, want)
	}
}

func TestFlattenRowsSkipsKeylessRowsInMixedSets(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Key: "a", Value: true, Type: TypeBoolean},
		{Value: "stray", Type: TypeString},
	}
	got := FlattenRows(rows)
	want := "{\n  \"a\": true\n}"
	if got != want {
		t.Fatalf("FlattenRows = %q, want %q", got, want)
	}
}

func TestFlattenRowsAllCompositeYieldsEmptyObject(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Key: "tags", Value: []interface{}{}, Type: TypeArray},
	}
	if got := FlattenRows(rows); got != "{}" {
		t.Fatalf("FlattenRows = %q, want {}", got)
	}
}

func TestFlattenRowsMultipleKeylessRows(t *testing.T) {
	t.Parallel()

	// Array nodes with several scalar elements have nothing to show as an
	// object literal; all rows are keyless and are skipped.
	rows := []Row{
		{Value: "a", Type: TypeString},
		{Value: "b", Type: TypeString},
	}
	if got := FlattenRows(rows); got != "{}" {
		t.Fatalf("FlattenRows = %q, want {}", got)
	}
}

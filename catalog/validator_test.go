package catalog_test

import (
	"errors"
	"testing"

	"github.com/xraph/rotawatch/catalog"
)

func TestValidatorValidDocument(t *testing.T) {
	v := catalog.NewValidator()

	doc := []byte(`{"lighthouse": {"name": "lighthouse", "festival": "EASTER"}}`)
	if err := v.Validate(doc); err != nil {
		t.Fatal("valid catalog should pass, got:", err)
	}
}

func TestValidatorMissingName(t *testing.T) {
	v := catalog.NewValidator()

	if err := v.Validate([]byte(`{"lighthouse": {"festival": "NONE"}}`)); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestValidatorUnknownFestival(t *testing.T) {
	v := catalog.NewValidator()

	if err := v.Validate([]byte(`{"a": {"name": "a", "festival": "CARNIVAL"}}`)); err == nil {
		t.Fatal("expected validation error for unknown festival")
	}
}

func TestValidatorRejectsNonObject(t *testing.T) {
	v := catalog.NewValidator()

	if err := v.Validate([]byte(`["lighthouse"]`)); err == nil {
		t.Fatal("expected validation error for array document")
	}
	if err := v.Validate([]byte(`{}`)); err == nil {
		t.Fatal("expected validation error for empty catalog")
	}
}

func TestParseDuplicateNames(t *testing.T) {
	doc := []byte(`{
		"a": {"name": "twin peaks"},
		"b": {"name": "twin peaks", "festival": "LUNAR"}
	}`)
	if _, err := catalog.Parse(doc); !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	if _, err := catalog.Parse([]byte(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

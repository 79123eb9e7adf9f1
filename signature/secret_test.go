package signature_test

import (
	"strings"
	"testing"

	"github.com/xraph/rotawatch/signature"
)

func TestGenerateSecret(t *testing.T) {
	a, err := signature.GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}
	b, err := signature.GenerateSecret()
	if err != nil {
		t.Fatal(err)
	}

	if !signature.IsGenerated(a) {
		t.Fatalf("unexpected shape: %q", a)
	}
	if a == b {
		t.Fatal("two consecutive secrets were equal")
	}
}

func TestIsGenerated(t *testing.T) {
	cases := map[string]bool{
		"":                                  false,
		"hunter2":                           false,
		"rwsec_abc":                         false,
		"rwsec_" + strings.Repeat("zz", 32): false,
		"rwsec_" + strings.Repeat("0f", 32): true,
	}
	for in, want := range cases {
		if got := signature.IsGenerated(in); got != want {
			t.Errorf("IsGenerated(%q): got %v, want %v", in, got, want)
		}
	}
}

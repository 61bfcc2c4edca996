package util

import "testing"

func TestEnvelopeWith(t *testing.T) {
	env := Error("submission failed").With("wizard", map[string]any{"valid": true})
	if env["error"] != "submission failed" {
		t.Fatalf("expected error kept, got %v", env["error"])
	}
	if _, ok := env["wizard"]; !ok {
		t.Fatal("expected wizard key")
	}
	if got := Data("items", []string{}).With("error", "x"); len(got) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(got))
	}
}

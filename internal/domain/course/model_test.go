package course

import "testing"

func TestTeeColorHex(t *testing.T) {
	if got := TeeColorHex("blue"); got != "#1e5aa8" {
		t.Fatalf("unexpected hex for blue: %q", got)
	}
	if got := TeeColorHex("chartreuse"); got != teeColorFallbackHex {
		t.Fatalf("unknown color must use the fallback, got=%q", got)
	}
}

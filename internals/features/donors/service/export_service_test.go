package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	addr := strings.Repeat("નડિયાદ ", 12) // Gujarati, 3 bytes per letter

	got := truncate(addr, 20)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid UTF-8: %q", got)
	}
	if r := []rune(got); len(r) != 20 {
		t.Errorf("rune length = %d, want 20 (19 kept + ellipsis)", len(r))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateShortValues(t *testing.T) {
	if got := truncate("", 10); got != "-" {
		t.Errorf("empty value = %q, want dash", got)
	}
	if got := truncate("Anand", 10); got != "Anand" {
		t.Errorf("short value = %q, want unchanged", got)
	}
}

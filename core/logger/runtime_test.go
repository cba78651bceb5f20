package logger

import (
	"testing"
)

func TestBuildRID(t *testing.T) {
	if got := BuildRID(42, 9, 7); got != "42:9:7" {
		t.Fatalf("BuildRID = %s", got)
	}
}

func TestUpdateMetaRoundtrip(t *testing.T) {
	ctx := WithUpdateMeta(Background(), 42, 7, 9)
	ctx = WithRID(ctx, "42:9:7")
	ctx = WithHandler(ctx, "fsm")
	ctx = WithState(ctx, "province")

	if got := UpdateIDFrom(ctx); got != 42 {
		t.Fatalf("UpdateIDFrom = %d", got)
	}
	if got := UserIDFrom(ctx); got != 7 {
		t.Fatalf("UserIDFrom = %d", got)
	}
	if got := ChatIDFrom(ctx); got != 9 {
		t.Fatalf("ChatIDFrom = %d", got)
	}
	if got := RIDFrom(ctx); got != "42:9:7" {
		t.Fatalf("RIDFrom = %s", got)
	}
	if got := HandlerFrom(ctx); got != "fsm" {
		t.Fatalf("HandlerFrom = %s", got)
	}
	if got := StateFrom(ctx); got != "province" {
		t.Fatalf("StateFrom = %s", got)
	}
}

func TestSanitizeLimit(t *testing.T) {
	in := "hola\x00mundo\x1b[0m"
	if got := Sanitize(in); got != "holamundo[0m" {
		t.Fatalf("Sanitize = %q", got)
	}
	if got := SanitizeLimit("holá que tal", 4); got != "holá" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("x", 0); got != "" {
		t.Fatalf("SanitizeLimit zero max = %q", got)
	}
}

func TestSummarizeStrings(t *testing.T) {
	joined, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if joined != "a, b" || !truncated {
		t.Fatalf("SummarizeStrings = %q truncated=%v", joined, truncated)
	}
	joined, truncated = SummarizeStrings([]string{"a"}, 2)
	if joined != "a" || truncated {
		t.Fatalf("SummarizeStrings = %q truncated=%v", joined, truncated)
	}
}

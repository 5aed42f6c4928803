package services

import (
	"encoding/json"
	"testing"
)

func TestNormPosCoercion(t *testing.T) {
	cases := map[string]string{
		"verb":      "verb",
		"NOUN":      "noun",
		" adj ":     "adj",
		"particle":  "particle",
		"phrase":    "phrase",
		"adjective": "noun",
		"gibberish": "noun",
		"":          "noun",
	}
	for in, want := range cases {
		v := in
		if got := normPos(&v); got != want {
			t.Errorf("normPos(%q) = %q, want %q", in, got, want)
		}
	}
	if got := normPos(nil); got != "noun" {
		t.Errorf("normPos(nil) = %q", got)
	}
}

func TestStableLemmaID(t *testing.T) {
	a := stableLemmaID("kitab")
	b := stableLemmaID("kitab")
	if a != b {
		t.Fatalf("unstable: %d vs %d", a, b)
	}
	if a < 1 {
		t.Fatalf("id must be positive, got %d", a)
	}
	if stableLemmaID("kitab") == stableLemmaID(" kitab") {
		t.Fatalf("distinct texts collided")
	}
	if stableLemmaID("") != 1 {
		t.Fatalf("empty text should floor at 1, got %d", stableLemmaID(""))
	}
}

func TestFeatureMapPlainAndDoubleEncoded(t *testing.T) {
	plain := json.RawMessage(`{"tense":"past"}`)
	if m := featureMap(plain); m == nil || m["tense"] != "past" {
		t.Fatalf("plain blob: %v", m)
	}
	wrapped := json.RawMessage(`"{\"tense\":\"past\"}"`)
	if m := featureMap(wrapped); m == nil || m["tense"] != "past" {
		t.Fatalf("double-encoded blob: %v", m)
	}
	if m := featureMap(nil); m != nil {
		t.Fatalf("nil blob should yield nil, got %v", m)
	}
	if m := featureMap(json.RawMessage(`42`)); m != nil {
		t.Fatalf("non-object blob should yield nil, got %v", m)
	}
}

func TestFirstStrAndClean(t *testing.T) {
	empty := "  "
	val := " x "
	if got := firstStr(nil, &empty, &val); got != "x" {
		t.Fatalf("firstStr = %q", got)
	}
	if clean(&empty) != nil {
		t.Fatalf("clean should drop blank strings")
	}
	if got := clean(&val); got == nil || *got != "x" {
		t.Fatalf("clean = %v", got)
	}
}

func TestPickTokenIDs(t *testing.T) {
	got := pickTokenIDs(nil, []string{" a ", "", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("fallback list: %v", got)
	}
	got = pickTokenIDs([]string{"u1"}, []string{"a"})
	if len(got) != 1 || got[0] != "u1" {
		t.Fatalf("token_u_ids should win: %v", got)
	}
}

func TestClampDifficulty(t *testing.T) {
	zero := 0
	if got := clampDifficulty(&zero); got == nil || *got != 1 {
		t.Fatalf("clamp(0) = %v", got)
	}
	three := 3
	if got := clampDifficulty(&three); got == nil || *got != 3 {
		t.Fatalf("clamp(3) = %v", got)
	}
	if clampDifficulty(nil) != nil {
		t.Fatalf("clamp(nil) should stay nil")
	}
}

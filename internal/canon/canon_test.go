package canon

import (
	"strings"
	"testing"
)

func TestCanonicalizeCollapsesWhitespace(t *testing.T) {
	got := Canonicalize("  Kitab \t AL-Huda  ")
	want := "kitab al-huda"
	if got != want {
		t.Fatalf("Canonicalize = %q, want %q", got, want)
	}
}

func TestCanonicalizeNFC(t *testing.T) {
	// e + combining acute vs precomposed é must hash identically.
	decomposed := "é"
	precomposed := "é"
	if Canonicalize(decomposed) != Canonicalize(precomposed) {
		t.Fatalf("NFC forms diverge: %q vs %q", Canonicalize(decomposed), Canonicalize(precomposed))
	}
}

func TestHashHexDeterministic(t *testing.T) {
	a := HashHex("ROOT|ktb")
	b := HashHex("root|KTB")
	if a != b {
		t.Fatalf("case variants diverge: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashHex("ROOT|qrb") {
		t.Fatalf("different inputs collided")
	}
}

func TestNormTextFlattensSeparators(t *testing.T) {
	got := NormText("ka ta|ba")
	if got != "ka_ta_ba" {
		t.Fatalf("NormText = %q", got)
	}
}

func TestIDNilSegmentsKeepPosition(t *testing.T) {
	withNil := ID("occ_token", "C:SURAH:001", nil, 3, "kitab")
	withEmpty := ID("occ_token", "C:SURAH:001", "", 3, "kitab")
	if withNil != withEmpty {
		t.Fatalf("nil segment should hash like empty: %s vs %s", withNil, withEmpty)
	}
	shifted := ID("occ_token", "C:SURAH:001", 3, "kitab")
	if withNil == shifted {
		t.Fatalf("dropping a segment must change the id")
	}
}

func TestKeyBuilders(t *testing.T) {
	if got := RootKey("ktb"); got != "ROOT|ktb" {
		t.Fatalf("RootKey = %q", got)
	}
	if got := TokenKey("kitab", "noun", "ktb"); got != "TOK|kitab|noun|ktb" {
		t.Fatalf("TokenKey = %q", got)
	}
	if got := SpanKey("idafa", []string{"a", "b"}); got != "SPAN|idafa|a,b" {
		t.Fatalf("SpanKey = %q", got)
	}
	if got := SentenceKey("nominal", []string{"a", "b"}); got != "SENT|nominal|a;b" {
		t.Fatalf("SentenceKey = %q", got)
	}
	if got := GrammarKey("idafa"); got != "GRAM|idafa" {
		t.Fatalf("GrammarKey = %q", got)
	}
	if got := ExpressionKey("bismillah", nil); got != "EXP|bismillah|" {
		t.Fatalf("ExpressionKey = %q", got)
	}
}

func TestKeySpacesDisjoint(t *testing.T) {
	// Same payload under different prefixes must never collide.
	if HashHex(RootKey("x")) == HashHex(GrammarKey("x")) {
		t.Fatalf("prefix spaces collided")
	}
	if !strings.HasPrefix(TokenKey("a", "b", "c"), "TOK|") {
		t.Fatalf("TokenKey missing prefix")
	}
}

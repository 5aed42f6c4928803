// Package canon derives the content-addressed identifiers shared by the
// ar_u_* dictionary tables and the ar_occ_* occurrence tables. Two clients
// that describe the same linguistic fact must converge on the same id, so
// everything here is deterministic: no randomness, no clock.
package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonicalize folds free text into hashing form: NFC-normalized,
// lowercased, internal whitespace collapsed, outer whitespace trimmed.
func Canonicalize(input string) string {
	s := norm.NFC.String(input)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// HashHex returns the sha256 hex digest of the canonicalized input.
func HashHex(input string) string {
	sum := sha256.Sum256([]byte(Canonicalize(input)))
	return hex.EncodeToString(sum[:])
}

// NormText produces the norm form stored in *_norm columns: canonicalized
// with separators flattened to underscores.
func NormText(input string) string {
	s := Canonicalize(input)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "|", "_")
}

// ID hashes an ordered tuple of parts into an occurrence id. Nil parts
// contribute an empty segment so positions stay stable.
func ID(parts ...interface{}) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			segs = append(segs, "")
			continue
		}
		segs = append(segs, fmt.Sprint(p))
	}
	return HashHex(strings.Join(segs, "|"))
}

// Canonical key builders for the dictionary tables. The prefixes keep the
// hash spaces of different node kinds disjoint.

func RootKey(rootNorm string) string {
	return "ROOT|" + rootNorm
}

func TokenKey(lemmaNorm, pos, rootNorm string) string {
	return "TOK|" + lemmaNorm + "|" + pos + "|" + rootNorm
}

func SpanKey(spanType string, tokenIDs []string) string {
	return "SPAN|" + spanType + "|" + strings.Join(tokenIDs, ",")
}

func SentenceKey(kind string, sequence []string) string {
	return "SENT|" + kind + "|" + strings.Join(sequence, ";")
}

func GrammarKey(grammarID string) string {
	return "GRAM|" + grammarID
}

func ExpressionKey(labelNorm string, sequence []string) string {
	return "EXP|" + labelNorm + "|" + strings.Join(sequence, ";")
}

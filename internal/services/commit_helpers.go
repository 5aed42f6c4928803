package services

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

var allowedPos = map[string]bool{
	"verb":     true,
	"noun":     true,
	"adj":      true,
	"particle": true,
	"phrase":   true,
}

// normPos coerces free-form part-of-speech strings into the closed enum.
// Unknown values become "noun" so a sloppy upstream tagger can never poison
// the dictionary with stray categories.
func normPos(p *string) string {
	v := strings.ToLower(strings.TrimSpace(deref(p)))
	if allowedPos[v] {
		return v
	}
	return "noun"
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// clean trims and returns nil for empty strings so optional columns stay NULL.
func clean(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// firstStr returns the first non-empty candidate, trimmed, or "".
func firstStr(candidates ...*string) string {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if v := strings.TrimSpace(*c); v != "" {
			return v
		}
	}
	return ""
}

func strPtr(v string) *string { return &v }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func clampDifficulty(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v < 1 {
		v = 1
	}
	return &v
}

// rawJSON passes a payload blob through to a JSON column, dropping empty or
// literal-null values.
func rawJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// featureMap decodes a features_json blob into a map. Some producers
// double-encode the blob as a JSON string, so unwrap one level of that.
func featureMap(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err == nil {
		return m
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &m); err == nil {
			return m
		}
	}
	return nil
}

func featureStr(m map[string]interface{}, key string) *string {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return clean(&s)
}

// pickTokenIDs prefers the token_u_ids field and falls back to token_ids.
func pickTokenIDs(uIDs, ids []string) []string {
	src := uIDs
	if len(src) == 0 {
		src = ids
	}
	out := make([]string, 0, len(src))
	for _, id := range src {
		if v := strings.TrimSpace(id); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cleanSeq(seq []string) []string {
	out := make([]string, 0, len(seq))
	for _, s := range seq {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// stableLemmaID derives a deterministic positive id for lemmas submitted
// without one. Same text always maps to the same id.
func stableLemmaID(text string) int64 {
	var hash uint32
	for _, r := range text {
		hash = hash*31 + uint32(r)
	}
	v := int64(hash % 2147483647)
	if v < 1 {
		v = 1
	}
	return v
}

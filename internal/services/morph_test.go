package services

import (
	"testing"
)

func fm(kv ...string) map[string]interface{} {
	m := map[string]interface{}{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func TestExtractMorphNoun(t *testing.T) {
	m := extractMorph("occ1", "noun", fm("status", "genitive", "number", "singular", "gender", "masculine", "type", "definite"))
	if m == nil {
		t.Fatal("expected a morph record")
	}
	if m.TokenOccID != "occ1" || m.Pos != "noun" {
		t.Fatalf("bad identity: %+v", m)
	}
	if m.NounCase == nil || *m.NounCase != "genitive" {
		t.Fatalf("noun_case = %v", m.NounCase)
	}
	if m.NounDefiniteness == nil || *m.NounDefiniteness != "definite" {
		t.Fatalf("noun_definiteness = %v", m.NounDefiniteness)
	}
	if m.VerbTense != nil {
		t.Fatalf("verbal fields must stay empty for nouns")
	}
}

func TestExtractMorphAdjSharesNounShape(t *testing.T) {
	m := extractMorph("occ1", "adj", fm("status", "nominative"))
	if m == nil || m.NounCase == nil || *m.NounCase != "nominative" {
		t.Fatalf("adj should map case from status: %+v", m)
	}
}

func TestExtractMorphVerb(t *testing.T) {
	m := extractMorph("occ2", "verb", fm("tense", "past", "mood", "indicative", "voice", "active", "person", "third", "number", "singular", "gender", "masculine"))
	if m == nil {
		t.Fatal("expected a morph record")
	}
	if m.VerbTense == nil || *m.VerbTense != "past" {
		t.Fatalf("verb_tense = %v", m.VerbTense)
	}
	if m.VerbGender == nil || *m.VerbGender != "masculine" {
		t.Fatalf("verb_gender = %v", m.VerbGender)
	}
	if m.NounCase != nil {
		t.Fatalf("nominal fields must stay empty for verbs")
	}
}

func TestExtractMorphParticle(t *testing.T) {
	m := extractMorph("occ3", "particle", fm("particle_type", "negation"))
	if m == nil || m.ParticleType == nil || *m.ParticleType != "negation" {
		t.Fatalf("particle_type = %+v", m)
	}
	// The "type" key carries definiteness for nominals and does not
	// double as a particle classifier.
	if m := extractMorph("occ3", "particle", fm("type", "preposition")); m != nil {
		t.Fatalf("bare type key should not produce a particle row, got %+v", m)
	}
}

func TestExtractMorphNoRecognizedFields(t *testing.T) {
	if m := extractMorph("occ4", "noun", fm("color", "blue")); m != nil {
		t.Fatalf("unrecognized features should yield nil, got %+v", m)
	}
	if m := extractMorph("occ4", "noun", nil); m != nil {
		t.Fatalf("nil features should yield nil, got %+v", m)
	}
	// Verbal keys on a nominal token do not count.
	if m := extractMorph("occ4", "noun", fm("tense", "past")); m != nil {
		t.Fatalf("cross-pos features should yield nil, got %+v", m)
	}
}

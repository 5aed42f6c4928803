package services

import (
	"github.com/qalamlabs/qalam-backend/internal/types"
)

// extractMorph projects a token's free-form feature blob onto the typed
// morphology columns for its part of speech. Returns nil when no recognized
// field is present, which signals the caller to delete any stale row.
func extractMorph(occID string, pos string, features map[string]interface{}) *types.TokenMorph {
	if features == nil {
		return nil
	}
	m := &types.TokenMorph{TokenOccID: occID, Pos: pos}
	found := false
	set := func(dst **string, key string) {
		if v := featureStr(features, key); v != nil {
			*dst = v
			found = true
		}
	}
	switch pos {
	case "noun", "adj":
		// Quranic morphology datasets label grammatical case "status" and
		// definiteness "type".
		set(&m.NounCase, "status")
		set(&m.NounNumber, "number")
		set(&m.NounGender, "gender")
		set(&m.NounDefiniteness, "type")
	case "verb":
		set(&m.VerbTense, "tense")
		set(&m.VerbMood, "mood")
		set(&m.VerbVoice, "voice")
		set(&m.VerbPerson, "person")
		set(&m.VerbNumber, "number")
		set(&m.VerbGender, "gender")
	case "particle":
		set(&m.ParticleType, "particle_type")
	}
	if !found {
		return nil
	}
	return m
}

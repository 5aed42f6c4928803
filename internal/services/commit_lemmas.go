package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

// writeLemmas upserts lemma headwords and their corpus locations. Also
// invoked from the tokens step when the payload carries inline lemmas.
func (s *commitService) writeLemmas(ctx context.Context, tx *gorm.DB, st *stepState, lemmas []LemmaInput) error {
	for i, l := range lemmas {
		text := firstStr(l.LemmaText)
		textClean := firstStr(l.LemmaTextClean)
		if textClean == "" {
			textClean = canon.Canonicalize(text)
		}
		if textClean == "" {
			st.warnf("lemmas[%d]: missing lemma_text, skipped", i)
			continue
		}
		if text == "" {
			text = textClean
		}
		id := textPtrOrStable(l.LemmaID, textClean)
		lemma := &types.Lemma{
			LemmaID:        id,
			LemmaText:      text,
			LemmaTextClean: textClean,
			WordsCount:     l.WordsCount,
			UniqWordsCount: l.UniqWordsCount,
			PrimaryUToken:  clean(l.PrimaryUToken),
		}
		if err := s.lemmas.Upsert(ctx, tx, lemma); err != nil {
			return err
		}
		st.bump("quran_ayah_lemmas", 1)

		for j, loc := range l.Locations {
			wordLocation := firstStr(loc.WordLocation)
			if wordLocation == "" {
				st.warnf("lemmas[%d].locations[%d]: missing word_location, skipped", i, j)
				continue
			}
			row := &types.LemmaLocation{
				LemmaID:       id,
				WordLocation:  wordLocation,
				Surah:         intOr(loc.Surah, 0),
				Ayah:          intOr(loc.Ayah, 0),
				TokenIndex:    intOr(loc.TokenIndex, 0),
				TokenOccID:    clean(loc.TokenOccID),
				UTokenID:      clean(loc.UTokenID),
				WordSimple:    clean(loc.WordSimple),
				WordDiacritic: clean(loc.WordDiacritic),
			}
			if err := s.lemmas.UpsertLocation(ctx, tx, row); err != nil {
				return err
			}
			st.bump("quran_ayah_lemma_location", 1)
		}
	}
	return nil
}

func textPtrOrStable(id *int64, textClean string) int64 {
	if id != nil && *id > 0 {
		return *id
	}
	return stableLemmaID(textClean)
}

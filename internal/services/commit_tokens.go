package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

// tokenMaps is the request-local resolution cache for the tokens step: an
// occurrence may reference a root or token type created earlier in the same
// payload, either by its provisional client id or implicitly by content.
type tokenMaps struct {
	rootByNorm  map[string]string
	rootByProv  map[string]string
	tokenByKey  map[string]string
	tokenByProv map[string]string
}

func newTokenMaps() *tokenMaps {
	return &tokenMaps{
		rootByNorm:  map[string]string{},
		rootByProv:  map[string]string{},
		tokenByKey:  map[string]string{},
		tokenByProv: map[string]string{},
	}
}

// resolveRoot maps an occurrence's root reference to a dictionary id.
// Explicit ids pass through (after provisional translation); a bare
// root_norm resolves only against roots created in this request. Unresolved
// references come back nil rather than failing the row.
func (m *tokenMaps) resolveRoot(rootNorm string, refs ...*string) *string {
	if v := firstStr(refs...); v != "" {
		if real, ok := m.rootByProv[v]; ok {
			return &real
		}
		return &v
	}
	if rootNorm != "" {
		if id, ok := m.rootByNorm[rootNorm]; ok {
			return &id
		}
	}
	return nil
}

func (s *commitService) writeTokens(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	if len(p.Lemmas) > 0 {
		if err := s.writeLemmas(ctx, tx, st, p.Lemmas); err != nil {
			return err
		}
	}

	maps := newTokenMaps()

	for i, r := range p.Roots {
		rootText := firstStr(r.Root)
		rootNorm := canon.NormText(firstStr(r.RootNorm))
		if rootNorm == "" {
			rootNorm = canon.NormText(rootText)
		}
		if rootNorm == "" {
			st.warnf("roots[%d]: missing root, skipped", i)
			continue
		}
		if rootText == "" {
			rootText = rootNorm
		}
		key := canon.RootKey(rootNorm)
		id := canon.HashHex(key)
		status := firstStr(r.Status)
		if status == "" {
			status = "active"
		}
		root := &types.URoot{
			ID:                id,
			CanonicalInput:    key,
			Root:              rootText,
			RootNorm:          rootNorm,
			RootLatn:          clean(r.RootLatn),
			ArabicTrilateral:  clean(r.ArabicTrilateral),
			EnglishTrilateral: clean(r.EnglishTrilateral),
			SearchKeysNorm:    clean(r.SearchKeysNorm),
			Status:            status,
			Difficulty:        clampDifficulty(r.Difficulty),
			Frequency:         clean(r.Frequency),
			ExtractedAt:       clean(r.ExtractedAt),
			MetaJSON:          rawJSON(r.MetaJSON),
		}
		if len(r.AltLatnJSON) > 0 {
			root.AltLatnJSON = toJSON(r.AltLatnJSON)
		}
		if err := s.roots.Upsert(ctx, tx, root); err != nil {
			return err
		}
		st.bump("ar_u_roots", 1)
		maps.rootByNorm[rootNorm] = id
		if prov := firstStr(r.URootID, r.URootIDAlt); prov != "" && prov != id {
			maps.rootByProv[prov] = id
		}
	}

	for i, t := range p.UTokens {
		lemma := firstStr(t.LemmaAr, t.Lemma, t.SurfaceAr, t.Surface)
		if lemma == "" {
			st.warnf("u_tokens[%d]: missing lemma, skipped", i)
			continue
		}
		lemmaNorm := canon.NormText(firstStr(t.LemmaNorm))
		if lemmaNorm == "" {
			lemmaNorm = canon.NormText(lemma)
		}
		pos := normPos(t.Pos)
		rootNorm := canon.NormText(firstStr(t.RootNorm))
		key := canon.TokenKey(lemmaNorm, pos, rootNorm)
		id := canon.HashHex(key)
		token := &types.UToken{
			ID:             id,
			CanonicalInput: key,
			LemmaAr:        lemma,
			LemmaNorm:      lemmaNorm,
			Pos:            pos,
			RootNorm:       clean(&rootNorm),
			URootID:        maps.resolveRoot(rootNorm, t.URootID, t.URootIDAlt),
			FeaturesJSON:   rawJSON(t.FeaturesJSON),
			MetaJSON:       rawJSON(t.MetaJSON),
		}
		if err := s.tokens.UpsertType(ctx, tx, token); err != nil {
			return err
		}
		st.bump("ar_u_tokens", 1)
		maps.tokenByKey[key] = id
		if prov := firstStr(t.UTokenID, t.UTokenIDAlt); prov != "" && prov != id {
			maps.tokenByProv[prov] = id
		}
	}

	for i, o := range p.OccTokens {
		surface := firstStr(o.SurfaceAr, o.Surface)
		if surface == "" || o.PosIndex == nil {
			st.warnf("occ_tokens[%d]: missing surface or pos_index, skipped", i)
			continue
		}
		containerID := firstStr(o.ContainerID)
		if containerID == "" {
			containerID = st.containerID
		}
		unitID := clean(o.UnitID)
		if unitID == nil {
			unitID = st.unitPtr()
		}
		pos := normPos(o.Pos)
		lemma := firstStr(o.LemmaAr)
		if lemma == "" {
			lemma = surface
		}
		lemmaNorm := canon.NormText(firstStr(o.LemmaNorm))
		if lemmaNorm == "" {
			lemmaNorm = canon.NormText(lemma)
		}
		rootNorm := canon.NormText(firstStr(o.RootNorm))
		rootID := maps.resolveRoot(rootNorm, o.URootID, o.URootIDAlt)

		uTokenID, err := s.resolveUToken(ctx, tx, st, maps, &o, lemma, lemmaNorm, pos, rootNorm, rootID)
		if err != nil {
			return err
		}

		occID := firstStr(o.TokenOccID, o.TokenOccIDAlt)
		if occID == "" {
			occID = canon.ID("occ_token", containerID, deref(unitID), *o.PosIndex, surface)
		}
		normAr := firstStr(o.NormAr)
		if normAr == "" {
			normAr = canon.NormText(surface)
		}
		occ := &types.TokenOccurrence{
			ID:           occID,
			UserID:       st.userID,
			ContainerID:  containerID,
			UnitID:       unitID,
			PosIndex:     *o.PosIndex,
			SurfaceAr:    surface,
			NormAr:       normAr,
			LemmaAr:      lemma,
			Pos:          pos,
			UTokenID:     uTokenID,
			URootID:      rootID,
			FeaturesJSON: rawJSON(o.FeaturesJSON),
		}
		if err := s.tokens.ReplaceOccurrence(ctx, tx, occ); err != nil {
			return err
		}
		st.bump("ar_occ_token", 1)

		// The morphology side record tracks the feature blob. No
		// recognized field means any stale row gets removed.
		if morph := extractMorph(occID, pos, featureMap(o.FeaturesJSON)); morph != nil {
			if err := s.tokens.UpsertMorph(ctx, tx, morph); err != nil {
				return err
			}
			st.bump("ar_occ_token_morph", 1)
		} else if err := s.tokens.DeleteMorph(ctx, tx, occID); err != nil {
			return err
		}
	}
	return nil
}

// resolveUToken finds or creates the dictionary entry backing a token
// occurrence: explicit id, then a content match against this request's
// entries, then a fresh upsert.
func (s *commitService) resolveUToken(
	ctx context.Context,
	tx *gorm.DB,
	st *stepState,
	maps *tokenMaps,
	o *TokenOccInput,
	lemma, lemmaNorm, pos, rootNorm string,
	rootID *string,
) (*string, error) {
	if v := firstStr(o.UTokenID, o.UTokenIDAlt); v != "" {
		if real, ok := maps.tokenByProv[v]; ok {
			return &real, nil
		}
		return &v, nil
	}
	key := canon.TokenKey(lemmaNorm, pos, rootNorm)
	if id, ok := maps.tokenByKey[key]; ok {
		return &id, nil
	}
	id := canon.HashHex(key)
	token := &types.UToken{
		ID:             id,
		CanonicalInput: key,
		LemmaAr:        lemma,
		LemmaNorm:      lemmaNorm,
		Pos:            pos,
		RootNorm:       clean(&rootNorm),
		URootID:        rootID,
	}
	if err := s.tokens.UpsertType(ctx, tx, token); err != nil {
		return nil, err
	}
	st.bump("ar_u_tokens", 1)
	maps.tokenByKey[key] = id
	return &id, nil
}

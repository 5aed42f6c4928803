package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

func (s *commitService) writeGrammar(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	byGrammarID := map[string]string{}
	byProv := map[string]string{}

	upsertConcept := func(concept *types.UGrammar) error {
		if err := s.grammar.UpsertConcept(ctx, tx, concept); err != nil {
			return err
		}
		st.bump("ar_u_grammar", 1)
		byGrammarID[concept.GrammarID] = concept.ID
		return nil
	}

	for i, g := range p.UGrammar {
		gid := firstStr(g.GrammarID, g.ID)
		if gid == "" {
			st.warnf("u_grammar[%d]: missing grammar_id, skipped", i)
			continue
		}
		key := canon.GrammarKey(gid)
		id := canon.HashHex(key)
		concept := &types.UGrammar{
			ID:             id,
			CanonicalInput: key,
			GrammarID:      gid,
			Category:       clean(g.Category),
			Title:          clean(g.Title),
			TitleAr:        clean(g.TitleAr),
			Definition:     clean(g.Definition),
			DefinitionAr:   clean(g.DefinitionAr),
			MetaJSON:       rawJSON(g.MetaJSON),
		}
		if err := upsertConcept(concept); err != nil {
			return err
		}
		if prov := firstStr(g.UGrammarID); prov != "" && prov != id {
			byProv[prov] = id
		}
	}

	for i, o := range p.OccGrammar {
		targetType := firstStr(o.TargetType)
		targetID := firstStr(o.TargetID)
		if targetType == "" || targetID == "" {
			st.warnf("occ_grammar[%d]: missing target_type or target_id, skipped", i)
			continue
		}

		var uGrammarID string
		if v := firstStr(o.UGrammarID); v != "" {
			if real, ok := byProv[v]; ok {
				uGrammarID = real
			} else {
				uGrammarID = v
			}
		} else if gid := firstStr(o.GrammarID); gid != "" {
			if id, ok := byGrammarID[gid]; ok {
				uGrammarID = id
			} else {
				// A concept referenced only by an occurrence still lands
				// in the dictionary, titled by its raw id until someone
				// fills it in.
				key := canon.GrammarKey(gid)
				id := canon.HashHex(key)
				concept := &types.UGrammar{
					ID:             id,
					CanonicalInput: key,
					GrammarID:      gid,
					Title:          &gid,
				}
				if err := upsertConcept(concept); err != nil {
					return err
				}
				uGrammarID = id
			}
		} else {
			st.warnf("occ_grammar[%d]: missing grammar concept reference, skipped", i)
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
		occID := firstStr(o.ID)
		if occID == "" {
			occID = canon.ID("occ_grammar", containerID, deref(unitID), uGrammarID, targetType, targetID)
		}
		occ := &types.GrammarOccurrence{
			ID:          occID,
			UserID:      st.userID,
			ContainerID: containerID,
			UnitID:      unitID,
			UGrammarID:  uGrammarID,
			TargetType:  targetType,
			TargetID:    targetID,
			Note:        clean(o.Note),
			MetaJSON:    rawJSON(o.MetaJSON),
		}
		if err := s.grammar.ReplaceOccurrence(ctx, tx, occ); err != nil {
			return err
		}
		st.bump("ar_occ_grammar", 1)
	}
	return nil
}

func (s *commitService) writeExpressions(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	byKey := map[string]string{}
	byProv := map[string]string{}

	for i, e := range p.UExpressions {
		label := firstStr(e.Label)
		text := firstStr(e.TextAr, e.Text)
		if label == "" && text == "" {
			st.warnf("u_expressions[%d]: missing label and text, skipped", i)
			continue
		}
		if label == "" {
			label = text
		}
		seq := cleanSeq(e.Sequence)
		key := firstStr(e.CanonicalInput)
		if key == "" {
			key = canon.ExpressionKey(canon.NormText(label), seq)
		}
		id := canon.HashHex(key)
		expr := &types.UExpression{
			ID:             id,
			CanonicalInput: key,
			Label:          label,
			TextAr:         text,
			MetaJSON:       rawJSON(e.MetaJSON),
		}
		if len(seq) > 0 {
			expr.SequenceJSON = toJSON(seq)
		}
		if err := s.expressions.UpsertType(ctx, tx, expr); err != nil {
			return err
		}
		st.bump("ar_u_expressions", 1)
		byKey[key] = id
		if prov := firstStr(e.UExpressionID); prov != "" && prov != id {
			byProv[prov] = id
		}
	}

	for i, o := range p.OccExpressions {
		var uExpressionID string
		if v := firstStr(o.UExpressionID); v != "" {
			if real, ok := byProv[v]; ok {
				uExpressionID = real
			} else {
				uExpressionID = v
			}
		} else {
			label := firstStr(o.Label)
			text := firstStr(o.TextAr, o.Text)
			if label == "" {
				label = text
			}
			if label == "" {
				st.warnf("occ_expressions[%d]: missing expression reference, skipped", i)
				continue
			}
			seq := cleanSeq(o.Sequence)
			key := firstStr(o.CanonicalInput)
			if key == "" {
				key = canon.ExpressionKey(canon.NormText(label), seq)
			}
			if id, ok := byKey[key]; ok {
				uExpressionID = id
			} else {
				id := canon.HashHex(key)
				expr := &types.UExpression{
					ID:             id,
					CanonicalInput: key,
					Label:          label,
					TextAr:         text,
				}
				if len(seq) > 0 {
					expr.SequenceJSON = toJSON(seq)
				}
				if err := s.expressions.UpsertType(ctx, tx, expr); err != nil {
					return err
				}
				st.bump("ar_u_expressions", 1)
				byKey[key] = id
				uExpressionID = id
			}
		}

		containerID := firstStr(o.ContainerID)
		if containerID == "" {
			containerID = st.containerID
		}
		unitID := clean(o.UnitID)
		if unitID == nil {
			unitID = st.unitPtr()
		}
		cache := firstStr(o.TextCache, o.Text, o.TextAr)
		occID := firstStr(o.ExpressionOccID)
		if occID == "" {
			occID = canon.ID("occ_expression", containerID, deref(unitID), uExpressionID, cache)
		}
		occ := &types.ExpressionOccurrence{
			ID:            occID,
			UserID:        st.userID,
			ContainerID:   containerID,
			UnitID:        unitID,
			StartIndex:    o.StartIndex,
			EndIndex:      o.EndIndex,
			TextCache:     clean(&cache),
			UExpressionID: uExpressionID,
			Note:          clean(o.Note),
			MetaJSON:      rawJSON(o.MetaJSON),
		}
		if err := s.expressions.ReplaceOccurrence(ctx, tx, occ); err != nil {
			return err
		}
		st.bump("ar_occ_expression", 1)
	}
	return nil
}

package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

func (s *commitService) writeSpans(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	byKey := map[string]string{}
	byProv := map[string]string{}

	for i, sp := range p.USpans {
		spanType := firstStr(sp.SpanType)
		if spanType == "" {
			spanType = "phrase"
		}
		tokenIDs := pickTokenIDs(sp.TokenUIDs, sp.TokenIDs)
		if len(tokenIDs) == 0 {
			st.warnf("u_spans[%d]: missing token ids, skipped", i)
			continue
		}
		key := canon.SpanKey(spanType, tokenIDs)
		id := canon.HashHex(key)
		span := &types.USpan{
			ID:             id,
			CanonicalInput: key,
			SpanType:       spanType,
			TokenIDsCSV:    strings.Join(tokenIDs, ","),
			MetaJSON:       rawJSON(sp.MetaJSON),
		}
		if err := s.spans.UpsertType(ctx, tx, span); err != nil {
			return err
		}
		st.bump("ar_u_spans", 1)
		byKey[key] = id
		if prov := firstStr(sp.USpanID); prov != "" && prov != id {
			byProv[prov] = id
		}
	}

	for i, o := range p.OccSpans {
		if o.StartIndex == nil || o.EndIndex == nil {
			st.warnf("occ_spans[%d]: missing start_index or end_index, skipped", i)
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
		spanType := firstStr(o.SpanType)
		if spanType == "" {
			spanType = "phrase"
		}

		var uSpanID *string
		if v := firstStr(o.USpanID); v != "" {
			if real, ok := byProv[v]; ok {
				uSpanID = &real
			} else {
				uSpanID = &v
			}
		} else if tokenIDs := pickTokenIDs(o.TokenUIDs, o.TokenIDs); len(tokenIDs) > 0 {
			key := canon.SpanKey(spanType, tokenIDs)
			if id, ok := byKey[key]; ok {
				uSpanID = &id
			} else {
				id := canon.HashHex(key)
				span := &types.USpan{
					ID:             id,
					CanonicalInput: key,
					SpanType:       spanType,
					TokenIDsCSV:    strings.Join(tokenIDs, ","),
				}
				if err := s.spans.UpsertType(ctx, tx, span); err != nil {
					return err
				}
				st.bump("ar_u_spans", 1)
				byKey[key] = id
				uSpanID = &id
			}
		}

		text := firstStr(o.TextCache, o.Text)
		occID := firstStr(o.SpanOccID)
		if occID == "" {
			occID = canon.ID("occ_span", containerID, deref(unitID), *o.StartIndex, *o.EndIndex, text)
		}
		occ := &types.SpanOccurrence{
			ID:          occID,
			UserID:      st.userID,
			ContainerID: containerID,
			UnitID:      unitID,
			StartIndex:  *o.StartIndex,
			EndIndex:    *o.EndIndex,
			TextCache:   clean(&text),
			USpanID:     uSpanID,
		}
		if err := s.spans.ReplaceOccurrence(ctx, tx, occ); err != nil {
			return err
		}
		st.bump("ar_occ_span", 1)
	}
	return nil
}

func (s *commitService) writeSentences(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	byKey := map[string]string{}
	byProv := map[string]string{}

	for i, sn := range p.USentences {
		kind := firstStr(sn.SentenceKind)
		if kind == "" {
			kind = "nominal"
		}
		seq := cleanSeq(sn.Sequence)
		if len(seq) == 0 && firstStr(sn.TextAr) == "" {
			st.warnf("u_sentences[%d]: missing sequence and text, skipped", i)
			continue
		}
		key := canon.SentenceKey(kind, seq)
		id := canon.HashHex(key)
		sentence := &types.USentence{
			ID:             id,
			CanonicalInput: key,
			SentenceKind:   kind,
			TextAr:         clean(sn.TextAr),
			MetaJSON:       rawJSON(sn.MetaJSON),
		}
		if len(seq) > 0 {
			sentence.SequenceJSON = toJSON(seq)
		}
		if err := s.sentences.UpsertType(ctx, tx, sentence); err != nil {
			return err
		}
		st.bump("ar_u_sentences", 1)
		byKey[key] = id
		if prov := firstStr(sn.USentenceID); prov != "" && prov != id {
			byProv[prov] = id
		}
	}

	for i, o := range p.OccSentences {
		textAr := firstStr(o.TextAr, o.Arabic)
		if textAr == "" {
			st.warnf("occ_sentences[%d]: missing text_ar, skipped", i)
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
		order := intOr(o.SentenceOrder, 1)

		var uSentenceID *string
		if v := firstStr(o.USentenceID); v != "" {
			if real, ok := byProv[v]; ok {
				uSentenceID = &real
			} else {
				uSentenceID = &v
			}
		} else if seq := cleanSeq(o.Sequence); len(seq) > 0 {
			kind := firstStr(o.SentenceKind)
			if kind == "" {
				kind = "nominal"
			}
			key := canon.SentenceKey(kind, seq)
			if id, ok := byKey[key]; ok {
				uSentenceID = &id
			} else {
				id := canon.HashHex(key)
				sentence := &types.USentence{
					ID:             id,
					CanonicalInput: key,
					SentenceKind:   kind,
					SequenceJSON:   toJSON(seq),
					TextAr:         &textAr,
				}
				if err := s.sentences.UpsertType(ctx, tx, sentence); err != nil {
					return err
				}
				st.bump("ar_u_sentences", 1)
				byKey[key] = id
				uSentenceID = &id
			}
		}

		occID := firstStr(o.SentenceOccID)
		if occID == "" {
			occID = canon.ID("occ_sentence", containerID, deref(unitID), order, textAr)
		}
		occ := &types.SentenceOccurrence{
			ID:            occID,
			UserID:        st.userID,
			ContainerID:   containerID,
			UnitID:        unitID,
			SentenceOrder: order,
			TextAr:        textAr,
			Translation:   clean(o.Translation),
			Notes:         clean(o.Notes),
			USentenceID:   uSentenceID,
		}
		if err := s.sentences.ReplaceOccurrence(ctx, tx, occ); err != nil {
			return err
		}
		st.bump("ar_occ_sentence", 1)
	}
	return nil
}

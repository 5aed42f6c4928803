package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

func (s *commitService) writeLinks(ctx context.Context, tx *gorm.DB, st *stepState, p *CommitPayload) error {
	for i, l := range p.LexiconLinks {
		occID := firstStr(l.TokenOccID)
		lexID := firstStr(l.ULexiconID)
		if occID == "" || lexID == "" {
			st.warnf("lexicon_links[%d]: missing ar_token_occ_id or ar_u_lexicon, skipped", i)
			continue
		}
		link := &types.TokenLexiconLink{
			TokenOccID: occID,
			ULexiconID: lexID,
			Confidence: l.Confidence,
			IsPrimary:  intOr(l.IsPrimary, 1),
			Source:     clean(l.Source),
			Note:       clean(l.Note),
		}
		if err := s.links.ReplaceLexiconLink(ctx, tx, link); err != nil {
			return err
		}
		st.bump("ar_token_lexicon_link", 1)
	}

	for i, l := range p.ValencyLinks {
		occID := firstStr(l.TokenOccID)
		valID := firstStr(l.UValencyID)
		if occID == "" || valID == "" {
			st.warnf("valency_links[%d]: missing ar_token_occ_id or ar_u_valency, skipped", i)
			continue
		}
		link := &types.TokenValencyLink{
			TokenOccID: occID,
			UValencyID: valID,
			Role:       clean(l.Role),
			Note:       clean(l.Note),
		}
		if err := s.links.ReplaceValencyLink(ctx, tx, link); err != nil {
			return err
		}
		st.bump("ar_token_valency_link", 1)
	}

	for i, l := range p.PairLinks {
		linkType := firstStr(l.LinkType)
		from := firstStr(l.FromTokenOcc)
		to := firstStr(l.ToTokenOcc)
		if linkType == "" || from == "" || to == "" {
			st.warnf("pair_links[%d]: missing link_type, from_token_occ or to_token_occ, skipped", i)
			continue
		}
		id := firstStr(l.ID)
		if id == "" {
			id = canon.ID("pair", linkType, from, to)
		}
		containerID := clean(l.ContainerID)
		if containerID == nil {
			containerID = st.containerPtr()
		}
		unitID := clean(l.UnitID)
		if unitID == nil {
			unitID = st.unitPtr()
		}
		link := &types.TokenPairLink{
			ID:           id,
			UserID:       st.userID,
			ContainerID:  containerID,
			UnitID:       unitID,
			LinkType:     linkType,
			FromTokenOcc: from,
			ToTokenOcc:   to,
			UValencyID:   clean(l.UValencyID),
			Note:         clean(l.Note),
			MetaJSON:     rawJSON(l.MetaJSON),
		}
		if err := s.links.ReplacePairLink(ctx, tx, link); err != nil {
			return err
		}
		st.bump("ar_token_pair_links", 1)
	}
	return nil
}

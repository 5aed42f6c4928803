package services

import (
	"github.com/qalamlabs/qalam-backend/internal/platform/apierr"
)

var validSteps = func() map[string]bool {
	m := make(map[string]bool, len(CommitSteps))
	for _, s := range CommitSteps {
		m[s] = true
	}
	return m
}()

// validateStep checks a step's preconditions before any write. containerID is
// the already-resolved active container ("" when none).
func validateStep(step string, p *CommitPayload, containerID string) error {
	if !validSteps[step] {
		return apierr.BadRequest("unknown commit step %q", step)
	}
	if p == nil {
		p = &CommitPayload{}
	}
	needContainer := func() error {
		if containerID == "" {
			return apierr.BadRequest("%s step requires an active container", step)
		}
		return nil
	}
	switch step {
	case "meta":
		if firstStr(p.Title) == "" {
			return apierr.BadRequest("meta step requires a title")
		}
	case "container":
		cType := firstStr(p.ContainerType)
		cKey := firstStr(p.ContainerKey)
		if p.Container != nil {
			if cType == "" {
				cType = firstStr(p.Container.ContainerType)
			}
			if cKey == "" {
				cKey = firstStr(p.Container.ContainerKey)
			}
		}
		if cType == "" || cKey == "" {
			return apierr.BadRequest("container step requires container_type and container_key")
		}
	case "units":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.Units) == 0 {
			return apierr.BadRequest("units step requires at least one unit")
		}
		for i, u := range p.Units {
			unitType := firstStr(u.UnitType)
			if unitType == "" {
				unitType = "ayah"
			}
			if unitType == "ayah" && (u.AyahFrom == nil || u.AyahTo == nil) {
				return apierr.BadRequest("unit %d: ayah units require ayah_from and ayah_to", i)
			}
		}
	case "lemmas":
		if len(p.Lemmas) == 0 {
			return apierr.BadRequest("lemmas step requires at least one lemma")
		}
	case "tokens":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.OccTokens) == 0 {
			return apierr.BadRequest("tokens step requires at least one occ_tokens row")
		}
	case "spans":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.OccSpans) == 0 {
			return apierr.BadRequest("spans step requires at least one occ_spans row")
		}
	case "grammar":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.OccGrammar) == 0 {
			return apierr.BadRequest("grammar step requires at least one occ_grammar row")
		}
	case "sentences":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.OccSentences) == 0 {
			return apierr.BadRequest("sentences step requires at least one occ_sentences row")
		}
	case "expressions":
		if err := needContainer(); err != nil {
			return err
		}
		if len(p.OccExpressions) == 0 {
			return apierr.BadRequest("expressions step requires at least one occ_expressions row")
		}
	case "links":
		if len(p.LexiconLinks) == 0 && len(p.ValencyLinks) == 0 && len(p.PairLinks) == 0 {
			return apierr.BadRequest("links step requires lexicon_links, valency_links or pair_links")
		}
	}
	return nil
}

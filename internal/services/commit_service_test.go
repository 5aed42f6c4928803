package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/canon"
	"github.com/qalamlabs/qalam-backend/internal/db"
	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type commitHarness struct {
	db     *gorm.DB
	svc    CommitService
	userID uuid.UUID
	lesson *types.Lesson
}

func newCommitHarness(t *testing.T) *commitHarness {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(db.AllModels()...))

	log, err := logger.New("development")
	require.NoError(t, err)

	svc := NewCommitService(
		gdb,
		log,
		repos.NewLessonRepo(gdb, log),
		repos.NewContainerRepo(gdb, log),
		repos.NewUnitRepo(gdb, log),
		repos.NewRootRepo(gdb, log),
		repos.NewTokenRepo(gdb, log),
		repos.NewSpanRepo(gdb, log),
		repos.NewSentenceRepo(gdb, log),
		repos.NewGrammarRepo(gdb, log),
		repos.NewExpressionRepo(gdb, log),
		repos.NewLemmaRepo(gdb, log),
		repos.NewLinkRepo(gdb, log),
	)

	h := &commitHarness{db: gdb, svc: svc, userID: uuid.New()}
	h.lesson = h.newLesson(t, h.userID, "Lesson One")
	return h
}

func (h *commitHarness) newLesson(t *testing.T, userID uuid.UUID, title string) *types.Lesson {
	t.Helper()
	user := &types.User{ID: userID, Email: fmt.Sprintf("%s@example.com", userID), Password: "hash", Role: "editor"}
	require.NoError(t, h.db.Create(user).Error)
	lesson := &types.Lesson{UserID: userID, Title: title, LessonType: "quran", Status: "draft"}
	require.NoError(t, h.db.Create(lesson).Error)
	return lesson
}

func (h *commitHarness) commit(t *testing.T, req *CommitRequest) *CommitResult {
	t.Helper()
	res, err := h.svc.CommitStep(context.Background(), h.userID, h.lesson.ID, req)
	require.NoError(t, err)
	return res
}

func (h *commitHarness) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(model).Count(&n).Error)
	return n
}

func (h *commitHarness) freshLesson(t *testing.T) *types.Lesson {
	t.Helper()
	var lesson types.Lesson
	require.NoError(t, h.db.First(&lesson, h.lesson.ID).Error)
	return &lesson
}

func sPtr(v string) *string { return &v }
func iPtr(v int) *int       { return &v }

func containerStep() *CommitRequest {
	return &CommitRequest{
		Step: "container",
		Payload: &CommitPayload{
			Container: &ContainerInput{
				ContainerType: sPtr("surah"),
				ContainerKey:  sPtr("001"),
				Title:         sPtr("Al-Fatiha"),
			},
		},
	}
}

func unitsStep() *CommitRequest {
	return &CommitRequest{
		Step: "units",
		Payload: &CommitPayload{
			Units: []UnitInput{
				{UnitID: sPtr("1:1"), AyahFrom: iPtr(1), AyahTo: iPtr(1)},
				{UnitID: sPtr("1:2"), AyahFrom: iPtr(2), AyahTo: iPtr(2)},
			},
		},
	}
}

func tokensStep(features string) *CommitRequest {
	var blob json.RawMessage
	if features != "" {
		blob = json.RawMessage(features)
	}
	return &CommitRequest{
		Step:   "tokens",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			Roots: []RootInput{
				{Root: sPtr("ktb"), RootNorm: sPtr("ktb")},
			},
			UTokens: []TokenTypeInput{
				{LemmaAr: sPtr("kitab"), Pos: sPtr("noun"), RootNorm: sPtr("ktb")},
			},
			OccTokens: []TokenOccInput{
				{
					SurfaceAr:    sPtr("kitabun"),
					PosIndex:     iPtr(0),
					Pos:          sPtr("noun"),
					LemmaAr:      sPtr("kitab"),
					RootNorm:     sPtr("ktb"),
					FeaturesJSON: blob,
				},
			},
		},
	}
}

func TestCommitLessonNotFound(t *testing.T) {
	h := newCommitHarness(t)
	_, err := h.svc.CommitStep(context.Background(), h.userID, 9999, containerStep())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestCommitContainerStep(t *testing.T) {
	h := newCommitHarness(t)
	res := h.commit(t, containerStep())

	require.Equal(t, "container", res.Step)
	require.NotNil(t, res.ContainerID)
	require.Equal(t, "C:SURAH:001", *res.ContainerID)
	require.Equal(t, 1, res.Counts["ar_containers"])
	require.Equal(t, 1, res.Counts["ar_lessons"])

	lesson := h.freshLesson(t)
	require.NotNil(t, lesson.ContainerID)
	require.Equal(t, "C:SURAH:001", *lesson.ContainerID)

	var container types.Container
	require.NoError(t, h.db.First(&container, "id = ?", "C:SURAH:001").Error)
	require.Equal(t, "surah", container.ContainerType)
	require.Equal(t, "001", container.ContainerKey)
}

func TestCommitUnitsStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	res := h.commit(t, unitsStep())

	require.Equal(t, 2, res.Counts["ar_container_units"])
	require.Equal(t, 2, res.Counts["ar_lesson_unit_link"])
	require.EqualValues(t, 2, h.count(t, &types.ContainerUnit{}))

	var unit types.ContainerUnit
	require.NoError(t, h.db.First(&unit, "id = ?", "1:1").Error)
	require.Equal(t, "C:SURAH:001", unit.ContainerID)
	require.Equal(t, "ayah", unit.UnitType)

	var link types.LessonUnitLink
	require.NoError(t, h.db.First(&link, "lesson_id = ? AND unit_id = ?", h.lesson.ID, "1:1").Error)
	require.Equal(t, "unit", link.LinkScope)
}

func TestCommitUnitsValidationBlocksAllWrites(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	req := &CommitRequest{
		Step: "units",
		Payload: &CommitPayload{
			Units: []UnitInput{
				{UnitID: sPtr("1:1"), AyahFrom: iPtr(1), AyahTo: iPtr(1)},
				{UnitID: sPtr("1:2"), AyahFrom: iPtr(2)}, // missing ayah_to
			},
		},
	}
	_, err := h.svc.CommitStep(context.Background(), h.userID, h.lesson.ID, req)
	require.Error(t, err)
	require.EqualValues(t, 0, h.count(t, &types.ContainerUnit{}))
}

func TestCommitStepsRequireExistingContainer(t *testing.T) {
	h := newCommitHarness(t)
	req := tokensStep("")
	req.ContainerID = sPtr("C:SURAH:999")
	req.UnitID = nil
	_, err := h.svc.CommitStep(context.Background(), h.userID, h.lesson.ID, req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
	require.EqualValues(t, 0, h.count(t, &types.TokenOccurrence{}))
}

func TestCommitTokensStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	res := h.commit(t, tokensStep(`{"status":"nominative","number":"singular"}`))

	require.Equal(t, 1, res.Counts["ar_u_roots"])
	require.Equal(t, 1, res.Counts["ar_u_tokens"])
	require.Equal(t, 1, res.Counts["ar_occ_token"])
	require.Equal(t, 1, res.Counts["ar_occ_token_morph"])
	require.Empty(t, res.Warnings)

	wantRootID := canon.HashHex(canon.RootKey("ktb"))
	wantTokenID := canon.HashHex(canon.TokenKey("kitab", "noun", "ktb"))
	wantOccID := canon.ID("occ_token", "C:SURAH:001", "1:1", 0, "kitabun")

	var occ types.TokenOccurrence
	require.NoError(t, h.db.First(&occ, "ar_token_occ_id = ?", wantOccID).Error)
	require.NotNil(t, occ.UTokenID)
	require.Equal(t, wantTokenID, *occ.UTokenID)
	require.NotNil(t, occ.URootID)
	require.Equal(t, wantRootID, *occ.URootID)
	require.Equal(t, h.userID, occ.UserID)

	var morph types.TokenMorph
	require.NoError(t, h.db.First(&morph, "ar_token_occ_id = ?", wantOccID).Error)
	require.NotNil(t, morph.NounCase)
	require.Equal(t, "nominative", *morph.NounCase)
	require.NotNil(t, morph.NounNumber)
	require.Equal(t, "singular", *morph.NounNumber)

	// Lesson pointers advanced to the resolved unit.
	lesson := h.freshLesson(t)
	require.NotNil(t, lesson.UnitID)
	require.Equal(t, "1:1", *lesson.UnitID)
}

func TestCommitTokensIdempotent(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	h.commit(t, tokensStep(`{"status":"nominative"}`))

	before := map[string]int64{
		"roots":  h.count(t, &types.URoot{}),
		"tokens": h.count(t, &types.UToken{}),
		"occ":    h.count(t, &types.TokenOccurrence{}),
		"morph":  h.count(t, &types.TokenMorph{}),
	}
	h.commit(t, tokensStep(`{"status":"nominative"}`))

	require.Equal(t, before["roots"], h.count(t, &types.URoot{}))
	require.Equal(t, before["tokens"], h.count(t, &types.UToken{}))
	require.Equal(t, before["occ"], h.count(t, &types.TokenOccurrence{}))
	require.Equal(t, before["morph"], h.count(t, &types.TokenMorph{}))
}

func TestCommitTokensMorphRemovedWhenFeaturesGone(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	h.commit(t, tokensStep(`{"status":"genitive"}`))
	require.EqualValues(t, 1, h.count(t, &types.TokenMorph{}))

	h.commit(t, tokensStep(""))
	require.EqualValues(t, 0, h.count(t, &types.TokenMorph{}))
	// The occurrence itself survives.
	require.EqualValues(t, 1, h.count(t, &types.TokenOccurrence{}))
}

func TestCommitTokensPosCoercion(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := tokensStep("")
	req.Payload.OccTokens[0].Pos = sPtr("adjective")
	h.commit(t, req)

	var occ types.TokenOccurrence
	require.NoError(t, h.db.First(&occ).Error)
	require.Equal(t, "noun", occ.Pos)
}

func TestCommitTokensSkipsMalformedRows(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := tokensStep("")
	req.Payload.OccTokens = append(req.Payload.OccTokens, TokenOccInput{SurfaceAr: sPtr("broken")}) // no pos_index
	res := h.commit(t, req)

	require.Equal(t, 1, res.Counts["ar_occ_token"])
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "occ_tokens[1]")
}

func TestDictionaryConvergesAcrossUsers(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	h.commit(t, tokensStep(""))

	otherUser := uuid.New()
	otherLesson := h.newLesson(t, otherUser, "Lesson Two")
	req := tokensStep("")
	req.ContainerID = sPtr("C:SURAH:001")
	_, err := h.svc.CommitStep(context.Background(), otherUser, otherLesson.ID, req)
	require.NoError(t, err)

	// Same root and token type submitted by two users land on one row each.
	require.EqualValues(t, 1, h.count(t, &types.URoot{}))
	require.EqualValues(t, 1, h.count(t, &types.UToken{}))
	// Occurrences converge too: same position hashes to the same id.
	require.EqualValues(t, 1, h.count(t, &types.TokenOccurrence{}))
}

func TestCommitGrammarAutoCreatesConcept(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := &CommitRequest{
		Step:   "grammar",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			OccGrammar: []GrammarOccInput{
				{GrammarID: sPtr("idafa"), TargetType: sPtr("token"), TargetID: sPtr("occ-x")},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["ar_u_grammar"])
	require.Equal(t, 1, res.Counts["ar_occ_grammar"])

	var concept types.UGrammar
	require.NoError(t, h.db.First(&concept, "grammar_id = ?", "idafa").Error)
	require.NotNil(t, concept.Title)
	require.Equal(t, "idafa", *concept.Title)
	require.Equal(t, canon.HashHex(canon.GrammarKey("idafa")), concept.ID)
}

func TestCommitSpansStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	tokenID := canon.HashHex(canon.TokenKey("kitab", "noun", "ktb"))
	req := &CommitRequest{
		Step:   "spans",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			USpans: []SpanTypeInput{
				{SpanType: sPtr("idafa"), TokenUIDs: []string{tokenID, "t2"}},
			},
			OccSpans: []SpanOccInput{
				{StartIndex: iPtr(0), EndIndex: iPtr(1), SpanType: sPtr("idafa"), TokenUIDs: []string{tokenID, "t2"}, Text: sPtr("kitabu llahi")},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["ar_u_spans"])
	require.Equal(t, 1, res.Counts["ar_occ_span"])

	var occ types.SpanOccurrence
	require.NoError(t, h.db.First(&occ).Error)
	require.NotNil(t, occ.USpanID)
	require.Equal(t, canon.HashHex(canon.SpanKey("idafa", []string{tokenID, "t2"})), *occ.USpanID)
	require.NotNil(t, occ.TextCache)
	require.Equal(t, "kitabu llahi", *occ.TextCache)
}

func TestCommitSentencesStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := &CommitRequest{
		Step:   "sentences",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			OccSentences: []SentenceOccInput{
				{TextAr: sPtr("alhamdu lillahi"), Sequence: []string{"t1", "t2"}, SentenceKind: sPtr("nominal"), Translation: sPtr("praise be to God")},
			},
		},
	}
	res := h.commit(t, req)
	// The type node is created implicitly from the occurrence's sequence.
	require.Equal(t, 1, res.Counts["ar_u_sentences"])
	require.Equal(t, 1, res.Counts["ar_occ_sentence"])

	var occ types.SentenceOccurrence
	require.NoError(t, h.db.First(&occ).Error)
	require.NotNil(t, occ.USentenceID)
	require.Equal(t, canon.HashHex(canon.SentenceKey("nominal", []string{"t1", "t2"})), *occ.USentenceID)
}

func TestCommitExpressionsStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := &CommitRequest{
		Step:   "expressions",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			UExpressions: []ExpressionInput{
				{Label: sPtr("bismillah"), TextAr: sPtr("bismi llahi"), Sequence: []string{"t1", "t2", "t3"}},
			},
			OccExpressions: []ExpressionOccInput{
				{Label: sPtr("bismillah"), Sequence: []string{"t1", "t2", "t3"}, StartIndex: iPtr(0), EndIndex: iPtr(2)},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["ar_u_expressions"])
	require.Equal(t, 1, res.Counts["ar_occ_expression"])

	var occ types.ExpressionOccurrence
	require.NoError(t, h.db.First(&occ).Error)
	require.Equal(t, canon.HashHex(canon.ExpressionKey("bismillah", []string{"t1", "t2", "t3"})), occ.UExpressionID)
}

func TestCommitLinksStep(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	req := &CommitRequest{
		Step:   "links",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			LexiconLinks: []LexiconLinkInput{
				{TokenOccID: sPtr("occ-a"), ULexiconID: sPtr("lex-1")},
			},
			PairLinks: []PairLinkInput{
				{LinkType: sPtr("idafa"), FromTokenOcc: sPtr("occ-a"), ToTokenOcc: sPtr("occ-b")},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["ar_token_lexicon_link"])
	require.Equal(t, 1, res.Counts["ar_token_pair_links"])

	var lex types.TokenLexiconLink
	require.NoError(t, h.db.First(&lex).Error)
	require.Equal(t, 1, lex.IsPrimary)

	var pair types.TokenPairLink
	require.NoError(t, h.db.First(&pair).Error)
	require.Equal(t, canon.ID("pair", "idafa", "occ-a", "occ-b"), pair.ID)

	// Resubmission replaces, never duplicates.
	h.commit(t, req)
	require.EqualValues(t, 1, h.count(t, &types.TokenPairLink{}))
	require.EqualValues(t, 1, h.count(t, &types.TokenLexiconLink{}))
}

func TestCommitMetaStep(t *testing.T) {
	h := newCommitHarness(t)
	req := &CommitRequest{
		Step: "meta",
		Payload: &CommitPayload{
			Title:      sPtr("Surah Al-Fatiha"),
			TitleAr:    sPtr("sura alfatiha"),
			Difficulty: iPtr(0), // clamped to 1
			Status:     sPtr("review"),
		},
	}
	h.commit(t, req)
	lesson := h.freshLesson(t)
	require.Equal(t, "Surah Al-Fatiha", lesson.Title)
	require.Equal(t, "review", lesson.Status)
	require.NotNil(t, lesson.Difficulty)
	require.Equal(t, 1, *lesson.Difficulty)
}

func TestCommitPointerAdvanceKeepsPriorUnit(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())
	h.commit(t, tokensStep("")) // resolves unit 1:1

	// A later step without any unit reference keeps the stored pointer.
	req := &CommitRequest{
		Step: "lemmas",
		Payload: &CommitPayload{
			Lemmas: []LemmaInput{{LemmaText: sPtr("kitab")}},
		},
	}
	res := h.commit(t, req)
	require.NotNil(t, res.UnitID)
	require.Equal(t, "1:1", *res.UnitID)

	lesson := h.freshLesson(t)
	require.NotNil(t, lesson.UnitID)
	require.Equal(t, "1:1", *lesson.UnitID)
}

func TestCommitLemmasStep(t *testing.T) {
	h := newCommitHarness(t)
	req := &CommitRequest{
		Step: "lemmas",
		Payload: &CommitPayload{
			Lemmas: []LemmaInput{
				{
					LemmaText: sPtr("kitab"),
					Locations: []LemmaLocationInput{
						{WordLocation: sPtr("1:1:2"), Surah: iPtr(1), Ayah: iPtr(1), TokenIndex: iPtr(2)},
					},
				},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["quran_ayah_lemmas"])
	require.Equal(t, 1, res.Counts["quran_ayah_lemma_location"])

	var lemma types.Lemma
	require.NoError(t, h.db.First(&lemma).Error)
	require.Equal(t, stableLemmaID("kitab"), lemma.LemmaID)

	// Same text resubmitted maps onto the same row.
	h.commit(t, req)
	require.EqualValues(t, 1, h.count(t, &types.Lemma{}))
	require.EqualValues(t, 1, h.count(t, &types.LemmaLocation{}))
}

func TestCommitNormInputsCanonicalized(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())

	mk := func(rootNorm, lemmaNorm string) *CommitRequest {
		return &CommitRequest{
			Step:   "tokens",
			UnitID: sPtr("1:1"),
			Payload: &CommitPayload{
				Roots: []RootInput{
					{Root: sPtr("k t b"), RootNorm: sPtr(rootNorm)},
				},
				UTokens: []TokenTypeInput{
					{LemmaAr: sPtr("kitab"), LemmaNorm: sPtr(lemmaNorm), Pos: sPtr("noun"), RootNorm: sPtr(rootNorm)},
				},
				OccTokens: []TokenOccInput{
					{SurfaceAr: sPtr("kitabun"), PosIndex: iPtr(0), Pos: sPtr("noun"), LemmaAr: sPtr("kitab"), LemmaNorm: sPtr(lemmaNorm), RootNorm: sPtr(rootNorm)},
				},
			},
		}
	}

	// Drifted casing and spacing in caller-supplied norm fields must land
	// on the same dictionary rows as the clean form.
	h.commit(t, mk("K T B", "KITAB"))
	h.commit(t, mk("k t b", "kitab"))

	require.EqualValues(t, 1, h.count(t, &types.URoot{}))
	require.EqualValues(t, 1, h.count(t, &types.UToken{}))

	var root types.URoot
	require.NoError(t, h.db.First(&root).Error)
	require.Equal(t, "k_t_b", root.RootNorm)
	require.Equal(t, canon.HashHex(canon.RootKey("k_t_b")), root.ID)

	var token types.UToken
	require.NoError(t, h.db.First(&token).Error)
	require.Equal(t, "kitab", token.LemmaNorm)
	require.Equal(t, canon.HashHex(canon.TokenKey("kitab", "noun", "k_t_b")), token.ID)
}

func TestCommitSpanOccIdentityIncludesText(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())

	mk := func(text string) *CommitRequest {
		return &CommitRequest{
			Step:   "spans",
			UnitID: sPtr("1:1"),
			Payload: &CommitPayload{
				OccSpans: []SpanOccInput{
					{StartIndex: iPtr(0), EndIndex: iPtr(1), SpanType: sPtr("idafa"), Text: sPtr(text)},
				},
			},
		}
	}

	h.commit(t, mk("kitabu llahi"))
	h.commit(t, mk("kitabu llahi"))
	require.EqualValues(t, 1, h.count(t, &types.SpanOccurrence{}))

	// The same range with different text is a distinct occurrence, not an
	// overwrite.
	h.commit(t, mk("kitabu rrahmani"))
	require.EqualValues(t, 2, h.count(t, &types.SpanOccurrence{}))
}

func TestCommitExpressionOccIdentityIncludesText(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())

	mk := func(text string, start int) *CommitRequest {
		return &CommitRequest{
			Step:   "expressions",
			UnitID: sPtr("1:1"),
			Payload: &CommitPayload{
				OccExpressions: []ExpressionOccInput{
					{Label: sPtr("bismillah"), Sequence: []string{"t1", "t2"}, Text: sPtr(text), StartIndex: iPtr(start), EndIndex: iPtr(start + 1)},
				},
			},
		}
	}

	h.commit(t, mk("bismi llahi", 0))
	h.commit(t, mk("bismi llahi", 0))
	require.EqualValues(t, 1, h.count(t, &types.ExpressionOccurrence{}))

	h.commit(t, mk("bismi rrahmani", 0))
	require.EqualValues(t, 2, h.count(t, &types.ExpressionOccurrence{}))

	// Indexes do not participate in the id: a moved range with the same
	// text replaces the existing row.
	h.commit(t, mk("bismi llahi", 3))
	require.EqualValues(t, 2, h.count(t, &types.ExpressionOccurrence{}))
}

func TestCommitUnitsExplicitLinkScopes(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	req := &CommitRequest{
		Step: "units",
		Payload: &CommitPayload{
			Units: []UnitInput{
				{UnitID: sPtr("1:1"), AyahFrom: iPtr(1), AyahTo: iPtr(1)},
			},
			Links: []UnitLinkInput{
				{LinkScope: sPtr("container"), UnitID: sPtr("1:1")},
				{LinkScope: sPtr("unit")}, // no unit to point at
				{LinkScope: sPtr("unit"), UnitID: sPtr("1:1"), Role: sPtr("ayah")},
			},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 2, res.Counts["ar_lesson_unit_link"])
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "links[1]")

	// Container-scope links never carry a unit id.
	var containerLink types.LessonUnitLink
	require.NoError(t, h.db.First(&containerLink, "link_scope = ?", "container").Error)
	require.Equal(t, "", containerLink.UnitID)

	var unitLink types.LessonUnitLink
	require.NoError(t, h.db.First(&unitLink, "link_scope = ? AND unit_id = ?", "unit", "1:1").Error)
	require.NotNil(t, unitLink.Role)
	require.Equal(t, "ayah", *unitLink.Role)
}

func TestCommitAliasIdKeysBind(t *testing.T) {
	h := newCommitHarness(t)
	h.commit(t, containerStep())
	h.commit(t, unitsStep())

	// Older exports used camelCase request keys and unprefixed id keys.
	body := `{
		"step": "tokens",
		"containerId": "C:SURAH:001",
		"unitId": "1:1",
		"payload": {
			"roots": [{"root": "ktb", "u_root_id": "prov-root"}],
			"u_tokens": [{"lemma_ar": "kitab", "pos": "noun", "root_norm": "ktb", "u_token_id": "prov-tok"}],
			"occ_tokens": [{
				"token_occ_id": "occ-legacy-1",
				"surface_ar": "kitabun",
				"pos_index": 0,
				"pos": "noun",
				"u_token_id": "prov-tok",
				"u_root_id": "prov-root"
			}]
		}
	}`
	var req CommitRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	res := h.commit(t, &req)
	require.Equal(t, 1, res.Counts["ar_occ_token"])
	require.NotNil(t, res.UnitID)
	require.Equal(t, "1:1", *res.UnitID)

	var occ types.TokenOccurrence
	require.NoError(t, h.db.First(&occ, "ar_token_occ_id = ?", "occ-legacy-1").Error)
	require.NotNil(t, occ.UTokenID)
	require.Equal(t, canon.HashHex(canon.TokenKey("kitab", "noun", "ktb")), *occ.UTokenID)
	require.NotNil(t, occ.URootID)
	require.Equal(t, canon.HashHex(canon.RootKey("ktb")), *occ.URootID)
}

func TestCommitUnitRefWithoutContainerAccepted(t *testing.T) {
	h := newCommitHarness(t)
	// The lesson has no container pointer yet; a unit reference alone has
	// nothing to check against and must not reject the step.
	req := &CommitRequest{
		Step:   "lemmas",
		UnitID: sPtr("1:1"),
		Payload: &CommitPayload{
			Lemmas: []LemmaInput{{LemmaText: sPtr("kitab")}},
		},
	}
	res := h.commit(t, req)
	require.Equal(t, 1, res.Counts["quran_ayah_lemmas"])
}

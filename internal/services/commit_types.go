package services

import (
	"encoding/json"
)

// CommitSteps is the fixed step sequence of the annotation commit protocol.
// Ordering is advisory: the client drives sequencing, the server only
// enforces that referenced containers/units already exist.
var CommitSteps = []string{
	"meta",
	"container",
	"units",
	"lemmas",
	"tokens",
	"spans",
	"grammar",
	"sentences",
	"expressions",
	"links",
}

// Older exports spelled some keys camelCase or without the ar_ prefix;
// both spellings bind so replayed payloads resolve the same ids.
type CommitRequest struct {
	Step           string         `json:"step"`
	ContainerID    *string        `json:"container_id"`
	ContainerIDAlt *string        `json:"containerId"`
	UnitID         *string        `json:"unit_id"`
	UnitIDAlt      *string        `json:"unitId"`
	Payload        *CommitPayload `json:"payload"`
}

// CommitPayload is the union of every step's payload shape; each step reads
// only its own fields.
type CommitPayload struct {
	// meta
	Title      *string                `json:"title"`
	TitleAr    *string                `json:"title_ar"`
	LessonType *string                `json:"lesson_type"`
	Subtype    *string                `json:"subtype"`
	Source     *string                `json:"source"`
	Status     *string                `json:"status"`
	Difficulty *int                   `json:"difficulty"`
	LessonJSON map[string]interface{} `json:"lesson_json"`

	// container/unit resolution fallbacks
	ContainerID *string `json:"container_id"`
	UnitID      *string `json:"unit_id"`

	// container (nested or inline at the top level)
	Container     *ContainerInput `json:"container"`
	ContainerType *string         `json:"container_type"`
	ContainerKey  *string         `json:"container_key"`
	MetaJSON      json.RawMessage `json:"meta_json"`

	// units
	Units []UnitInput     `json:"units"`
	Links []UnitLinkInput `json:"links"`

	// lemmas (also honored inline in the tokens step)
	Lemmas []LemmaInput `json:"lemmas"`

	// tokens
	Roots     []RootInput      `json:"roots"`
	UTokens   []TokenTypeInput `json:"u_tokens"`
	OccTokens []TokenOccInput  `json:"occ_tokens"`

	// spans
	USpans   []SpanTypeInput `json:"u_spans"`
	OccSpans []SpanOccInput  `json:"occ_spans"`

	// grammar
	UGrammar   []GrammarTypeInput `json:"u_grammar"`
	OccGrammar []GrammarOccInput  `json:"occ_grammar"`

	// sentences
	USentences   []SentenceTypeInput `json:"u_sentences"`
	OccSentences []SentenceOccInput  `json:"occ_sentences"`

	// expressions
	UExpressions   []ExpressionInput    `json:"u_expressions"`
	OccExpressions []ExpressionOccInput `json:"occ_expressions"`

	// links
	LexiconLinks []LexiconLinkInput `json:"lexicon_links"`
	ValencyLinks []ValencyLinkInput `json:"valency_links"`
	PairLinks    []PairLinkInput    `json:"pair_links"`
}

type ContainerInput struct {
	ID            *string         `json:"id"`
	ContainerID   *string         `json:"container_id"`
	ContainerType *string         `json:"container_type"`
	ContainerKey  *string         `json:"container_key"`
	Title         *string         `json:"title"`
	MetaJSON      json.RawMessage `json:"meta_json"`
}

type UnitInput struct {
	ID         *string         `json:"id"`
	UnitID     *string         `json:"unit_id"`
	UnitType   *string         `json:"unit_type"`
	OrderIndex *int            `json:"order_index"`
	AyahFrom   *int            `json:"ayah_from"`
	AyahTo     *int            `json:"ayah_to"`
	StartRef   *string         `json:"start_ref"`
	EndRef     *string         `json:"end_ref"`
	TextCache  *string         `json:"text_cache"`
	MetaJSON   json.RawMessage `json:"meta_json"`
}

type UnitLinkInput struct {
	LinkScope  *string         `json:"link_scope"`
	UnitID     *string         `json:"unit_id"`
	OrderIndex *int            `json:"order_index"`
	Role       *string         `json:"role"`
	Note       *string         `json:"note"`
	LinkJSON   json.RawMessage `json:"link_json"`
}

type LemmaInput struct {
	LemmaID        *int64               `json:"lemma_id"`
	LemmaText      *string              `json:"lemma_text"`
	LemmaTextClean *string              `json:"lemma_text_clean"`
	WordsCount     *int                 `json:"words_count"`
	UniqWordsCount *int                 `json:"uniq_words_count"`
	PrimaryUToken  *string              `json:"primary_ar_u_token"`
	Locations      []LemmaLocationInput `json:"locations"`
}

type LemmaLocationInput struct {
	WordLocation  *string `json:"word_location"`
	Surah         *int    `json:"surah"`
	Ayah          *int    `json:"ayah"`
	TokenIndex    *int    `json:"token_index"`
	TokenOccID    *string `json:"ar_token_occ_id"`
	UTokenID      *string `json:"ar_u_token"`
	WordSimple    *string `json:"word_simple"`
	WordDiacritic *string `json:"word_diacritic"`
}

type RootInput struct {
	Root              *string         `json:"root"`
	RootNorm          *string         `json:"root_norm"`
	RootLatn          *string         `json:"root_latn"`
	ArabicTrilateral  *string         `json:"arabic_trilateral"`
	EnglishTrilateral *string         `json:"english_trilateral"`
	AltLatnJSON       []interface{}   `json:"alt_latn_json"`
	SearchKeysNorm    *string         `json:"search_keys_norm"`
	Status            *string         `json:"status"`
	Difficulty        *int            `json:"difficulty"`
	Frequency         *string         `json:"frequency"`
	ExtractedAt       *string         `json:"extracted_at"`
	URootID           *string         `json:"ar_u_root"`
	URootIDAlt        *string         `json:"u_root_id"`
	MetaJSON          json.RawMessage `json:"meta_json"`
}

type TokenTypeInput struct {
	LemmaAr      *string         `json:"lemma_ar"`
	SurfaceAr    *string         `json:"surface_ar"`
	Surface      *string         `json:"surface"`
	Lemma        *string         `json:"lemma"`
	LemmaNorm    *string         `json:"lemma_norm"`
	Pos          *string         `json:"pos"`
	RootNorm     *string         `json:"root_norm"`
	URootID      *string         `json:"ar_u_root"`
	URootIDAlt   *string         `json:"u_root_id"`
	UTokenID     *string         `json:"ar_u_token"`
	UTokenIDAlt  *string         `json:"u_token_id"`
	FeaturesJSON json.RawMessage `json:"features_json"`
	MetaJSON     json.RawMessage `json:"meta_json"`
}

type TokenOccInput struct {
	TokenOccID    *string         `json:"ar_token_occ_id"`
	TokenOccIDAlt *string         `json:"token_occ_id"`
	ContainerID   *string         `json:"container_id"`
	UnitID        *string         `json:"unit_id"`
	PosIndex      *int            `json:"pos_index"`
	SurfaceAr     *string         `json:"surface_ar"`
	Surface       *string         `json:"surface"`
	NormAr        *string         `json:"norm_ar"`
	LemmaAr       *string         `json:"lemma_ar"`
	LemmaNorm     *string         `json:"lemma_norm"`
	Pos           *string         `json:"pos"`
	RootNorm      *string         `json:"root_norm"`
	URootID       *string         `json:"ar_u_root"`
	URootIDAlt    *string         `json:"u_root_id"`
	UTokenID      *string         `json:"ar_u_token"`
	UTokenIDAlt   *string         `json:"u_token_id"`
	FeaturesJSON  json.RawMessage `json:"features_json"`
	MetaJSON      json.RawMessage `json:"meta_json"`
}

type SpanTypeInput struct {
	SpanType  *string         `json:"span_type"`
	TokenUIDs []string        `json:"token_u_ids"`
	TokenIDs  []string        `json:"token_ids"`
	USpanID   *string         `json:"ar_u_span"`
	MetaJSON  json.RawMessage `json:"meta_json"`
}

type SpanOccInput struct {
	SpanOccID   *string         `json:"ar_span_occ_id"`
	ContainerID *string         `json:"container_id"`
	UnitID      *string         `json:"unit_id"`
	StartIndex  *int            `json:"start_index"`
	EndIndex    *int            `json:"end_index"`
	SpanType    *string         `json:"span_type"`
	TokenUIDs   []string        `json:"token_u_ids"`
	TokenIDs    []string        `json:"token_ids"`
	USpanID     *string         `json:"ar_u_span"`
	TextCache   *string         `json:"text_cache"`
	Text        *string         `json:"text"`
	MetaJSON    json.RawMessage `json:"meta_json"`
}

type GrammarTypeInput struct {
	GrammarID    *string         `json:"grammar_id"`
	ID           *string         `json:"id"`
	Category     *string         `json:"category"`
	Title        *string         `json:"title"`
	TitleAr      *string         `json:"title_ar"`
	Definition   *string         `json:"definition"`
	DefinitionAr *string         `json:"definition_ar"`
	UGrammarID   *string         `json:"ar_u_grammar"`
	MetaJSON     json.RawMessage `json:"meta_json"`
}

type GrammarOccInput struct {
	ID          *string         `json:"id"`
	ContainerID *string         `json:"container_id"`
	UnitID      *string         `json:"unit_id"`
	UGrammarID  *string         `json:"ar_u_grammar"`
	GrammarID   *string         `json:"grammar_id"`
	TargetType  *string         `json:"target_type"`
	TargetID    *string         `json:"target_id"`
	Note        *string         `json:"note"`
	MetaJSON    json.RawMessage `json:"meta_json"`
}

type SentenceTypeInput struct {
	SentenceKind *string         `json:"sentence_kind"`
	Sequence     []string        `json:"sequence"`
	TextAr       *string         `json:"text_ar"`
	USentenceID  *string         `json:"ar_u_sentence"`
	MetaJSON     json.RawMessage `json:"meta_json"`
}

type SentenceOccInput struct {
	SentenceOccID *string         `json:"ar_sentence_occ_id"`
	ContainerID   *string         `json:"container_id"`
	UnitID        *string         `json:"unit_id"`
	SentenceOrder *int            `json:"sentence_order"`
	SentenceKind  *string         `json:"sentence_kind"`
	Sequence      []string        `json:"sequence"`
	TextAr        *string         `json:"text_ar"`
	Arabic        *string         `json:"arabic"`
	Translation   *string         `json:"translation"`
	Notes         *string         `json:"notes"`
	USentenceID   *string         `json:"ar_u_sentence"`
	MetaJSON      json.RawMessage `json:"meta_json"`
}

type ExpressionInput struct {
	UExpressionID  *string         `json:"ar_u_expression"`
	Label          *string         `json:"label"`
	TextAr         *string         `json:"text_ar"`
	Text           *string         `json:"text"`
	Sequence       []string        `json:"sequence"`
	CanonicalInput *string         `json:"canonical_input"`
	MetaJSON       json.RawMessage `json:"meta_json"`
}

type ExpressionOccInput struct {
	ExpressionOccID *string         `json:"ar_expression_occ_id"`
	ContainerID     *string         `json:"container_id"`
	UnitID          *string         `json:"unit_id"`
	StartIndex      *int            `json:"start_index"`
	EndIndex        *int            `json:"end_index"`
	TextCache       *string         `json:"text_cache"`
	Text            *string         `json:"text"`
	Note            *string         `json:"note"`
	UExpressionID   *string         `json:"ar_u_expression"`
	Label           *string         `json:"label"`
	TextAr          *string         `json:"text_ar"`
	Sequence        []string        `json:"sequence"`
	CanonicalInput  *string         `json:"canonical_input"`
	MetaJSON        json.RawMessage `json:"meta_json"`
}

type LexiconLinkInput struct {
	TokenOccID *string  `json:"ar_token_occ_id"`
	ULexiconID *string  `json:"ar_u_lexicon"`
	Confidence *float64 `json:"confidence"`
	IsPrimary  *int     `json:"is_primary"`
	Source     *string  `json:"source"`
	Note       *string  `json:"note"`
}

type ValencyLinkInput struct {
	TokenOccID *string `json:"ar_token_occ_id"`
	UValencyID *string `json:"ar_u_valency"`
	Role       *string `json:"role"`
	Note       *string `json:"note"`
}

type PairLinkInput struct {
	ID           *string         `json:"id"`
	ContainerID  *string         `json:"container_id"`
	UnitID       *string         `json:"unit_id"`
	LinkType     *string         `json:"link_type"`
	FromTokenOcc *string         `json:"from_token_occ"`
	ToTokenOcc   *string         `json:"to_token_occ"`
	UValencyID   *string         `json:"ar_u_valency"`
	Note         *string         `json:"note"`
	MetaJSON     json.RawMessage `json:"meta_json"`
}

// CommitResult is the per-step summary callers use to detect whether a step
// fully applied. Counts are rows written per table; Warnings records rows
// skipped for missing required data.
type CommitResult struct {
	LessonID    int64          `json:"lesson_id"`
	Step        string         `json:"step"`
	ContainerID *string        `json:"container_id"`
	UnitID      *string        `json:"unit_id"`
	Counts      map[string]int `json:"counts"`
	Warnings    []string       `json:"warnings,omitempty"`
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UToken is the canonical (lemma, pos, root) dictionary entry; id is the
// content hash of "TOK|<lemma_norm>|<pos>|<root_norm>".
type UToken struct {
	ID             string         `gorm:"primaryKey;column:ar_u_token" json:"ar_u_token"`
	CanonicalInput string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	LemmaAr        string         `gorm:"not null;column:lemma_ar" json:"lemma_ar"`
	LemmaNorm      string         `gorm:"index;not null;column:lemma_norm" json:"lemma_norm"`
	Pos            string         `gorm:"not null;column:pos" json:"pos"`
	RootNorm       *string        `gorm:"column:root_norm" json:"root_norm"`
	URootID        *string        `gorm:"column:ar_u_root" json:"ar_u_root"`
	FeaturesJSON   datatypes.JSON `gorm:"column:features_json" json:"features_json"`
	MetaJSON       datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (UToken) TableName() string { return "ar_u_tokens" }

// TokenOccurrence is one surface token at one position inside one unit.
// Replace-by-id: resubmitting the same step overwrites the row wholesale.
type TokenOccurrence struct {
	ID           string         `gorm:"primaryKey;column:ar_token_occ_id" json:"ar_token_occ_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID  string         `gorm:"index;not null;column:container_id" json:"container_id"`
	UnitID       *string        `gorm:"index;column:unit_id" json:"unit_id"`
	PosIndex     int            `gorm:"not null;column:pos_index" json:"pos_index"`
	SurfaceAr    string         `gorm:"not null;column:surface_ar" json:"surface_ar"`
	NormAr       string         `gorm:"column:norm_ar" json:"norm_ar"`
	LemmaAr      string         `gorm:"column:lemma_ar" json:"lemma_ar"`
	Pos          string         `gorm:"column:pos" json:"pos"`
	UTokenID     *string        `gorm:"index;column:ar_u_token" json:"ar_u_token"`
	URootID      *string        `gorm:"column:ar_u_root" json:"ar_u_root"`
	FeaturesJSON datatypes.JSON `gorm:"column:features_json" json:"features_json"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (TokenOccurrence) TableName() string { return "ar_occ_token" }

// TokenMorph is the fixed-shape morphology side record derived from a token
// occurrence's feature blob. Fully recomputed on every tokens step; deleted
// when no recognized feature survives.
type TokenMorph struct {
	TokenOccID       string         `gorm:"primaryKey;column:ar_token_occ_id" json:"ar_token_occ_id"`
	Pos              string         `gorm:"not null;column:pos" json:"pos"`
	NounCase         *string        `gorm:"column:noun_case" json:"noun_case"`
	NounNumber       *string        `gorm:"column:noun_number" json:"noun_number"`
	NounGender       *string        `gorm:"column:noun_gender" json:"noun_gender"`
	NounDefiniteness *string        `gorm:"column:noun_definiteness" json:"noun_definiteness"`
	VerbTense        *string        `gorm:"column:verb_tense" json:"verb_tense"`
	VerbMood         *string        `gorm:"column:verb_mood" json:"verb_mood"`
	VerbVoice        *string        `gorm:"column:verb_voice" json:"verb_voice"`
	VerbPerson       *string        `gorm:"column:verb_person" json:"verb_person"`
	VerbNumber       *string        `gorm:"column:verb_number" json:"verb_number"`
	VerbGender       *string        `gorm:"column:verb_gender" json:"verb_gender"`
	ParticleType     *string        `gorm:"column:particle_type" json:"particle_type"`
	ExtraJSON        datatypes.JSON `gorm:"column:extra_json" json:"extra_json"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (TokenMorph) TableName() string { return "ar_occ_token_morph" }

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// USentence is a canonical clause pattern keyed by kind and token sequence.
type USentence struct {
	ID             string         `gorm:"primaryKey;column:ar_u_sentence" json:"ar_u_sentence"`
	CanonicalInput string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	SentenceKind   string         `gorm:"not null;column:sentence_kind" json:"sentence_kind"`
	SequenceJSON   datatypes.JSON `gorm:"column:sequence_json" json:"sequence_json"`
	TextAr         *string        `gorm:"column:text_ar" json:"text_ar"`
	MetaJSON       datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (USentence) TableName() string { return "ar_u_sentences" }

type SentenceOccurrence struct {
	ID            string    `gorm:"primaryKey;column:ar_sentence_occ_id" json:"ar_sentence_occ_id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID   string    `gorm:"index;not null;column:container_id" json:"container_id"`
	UnitID        *string   `gorm:"index;column:unit_id" json:"unit_id"`
	SentenceOrder int       `gorm:"not null;default:1;column:sentence_order" json:"sentence_order"`
	TextAr        string    `gorm:"not null;column:text_ar" json:"text_ar"`
	Translation   *string   `gorm:"column:translation" json:"translation"`
	Notes         *string   `gorm:"column:notes" json:"notes"`
	USentenceID   *string   `gorm:"index;column:ar_u_sentence" json:"ar_u_sentence"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (SentenceOccurrence) TableName() string { return "ar_occ_sentence" }

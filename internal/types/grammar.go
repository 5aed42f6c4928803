package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UGrammar is a named grammatical category with bilingual title/definition.
// Unlike the other dictionary tables its natural key is the caller-assigned
// grammar_id; the content hash of "GRAM|<grammar_id>" keeps the id space
// uniform with the rest of the dictionary.
type UGrammar struct {
	ID             string         `gorm:"primaryKey;column:ar_u_grammar" json:"ar_u_grammar"`
	CanonicalInput string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	GrammarID      string         `gorm:"index;not null;column:grammar_id" json:"grammar_id"`
	Category       *string        `gorm:"column:category" json:"category"`
	Title          *string        `gorm:"column:title" json:"title"`
	TitleAr        *string        `gorm:"column:title_ar" json:"title_ar"`
	Definition     *string        `gorm:"column:definition" json:"definition"`
	DefinitionAr   *string        `gorm:"column:definition_ar" json:"definition_ar"`
	MetaJSON       datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (UGrammar) TableName() string { return "ar_u_grammar" }

// GrammarOccurrence attaches a grammar concept to a token, span or sentence
// occurrence inside one unit.
type GrammarOccurrence struct {
	ID          string         `gorm:"primaryKey;column:id" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID string         `gorm:"index;not null;column:container_id" json:"container_id"`
	UnitID      *string        `gorm:"index;column:unit_id" json:"unit_id"`
	UGrammarID  string         `gorm:"index;not null;column:ar_u_grammar" json:"ar_u_grammar"`
	TargetType  string         `gorm:"not null;column:target_type" json:"target_type"`
	TargetID    string         `gorm:"not null;column:target_id" json:"target_id"`
	Note        *string        `gorm:"column:note" json:"note"`
	MetaJSON    datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (GrammarOccurrence) TableName() string { return "ar_occ_grammar" }

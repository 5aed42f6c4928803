package types

import (
	"time"

	"gorm.io/datatypes"
)

// URoot is a corpus-wide dictionary entry for a canonical root. Its id is
// the content hash of "ROOT|<root_norm>", so identical roots submitted by
// unrelated lessons land on the same row.
type URoot struct {
	ID                string         `gorm:"primaryKey;column:ar_u_root" json:"ar_u_root"`
	CanonicalInput    string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	Root              string         `gorm:"not null;column:root" json:"root"`
	ArabicTrilateral  *string        `gorm:"column:arabic_trilateral" json:"arabic_trilateral"`
	EnglishTrilateral *string        `gorm:"column:english_trilateral" json:"english_trilateral"`
	RootLatn          *string        `gorm:"column:root_latn" json:"root_latn"`
	RootNorm          string         `gorm:"index;not null;column:root_norm" json:"root_norm"`
	AltLatnJSON       datatypes.JSON `gorm:"column:alt_latn_json" json:"alt_latn_json"`
	SearchKeysNorm    *string        `gorm:"column:search_keys_norm" json:"search_keys_norm"`
	Status            string         `gorm:"not null;default:'active';column:status" json:"status"`
	Difficulty        *int           `gorm:"column:difficulty" json:"difficulty"`
	Frequency         *string        `gorm:"column:frequency" json:"frequency"`
	ExtractedAt       *string        `gorm:"column:extracted_at" json:"extracted_at"`
	MetaJSON          datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
}

func (URoot) TableName() string { return "ar_u_roots" }

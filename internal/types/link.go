package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TokenLexiconLink attaches a token occurrence to a lexicon sense.
type TokenLexiconLink struct {
	TokenOccID string    `gorm:"primaryKey;column:ar_token_occ_id" json:"ar_token_occ_id"`
	ULexiconID string    `gorm:"primaryKey;column:ar_u_lexicon" json:"ar_u_lexicon"`
	Confidence *float64  `gorm:"column:confidence" json:"confidence"`
	IsPrimary  int       `gorm:"not null;default:1;column:is_primary" json:"is_primary"`
	Source     *string   `gorm:"column:source" json:"source"`
	Note       *string   `gorm:"column:note" json:"note"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (TokenLexiconLink) TableName() string { return "ar_token_lexicon_link" }

// TokenValencyLink attaches a token occurrence to a valency frame.
type TokenValencyLink struct {
	TokenOccID string    `gorm:"primaryKey;column:ar_token_occ_id" json:"ar_token_occ_id"`
	UValencyID string    `gorm:"primaryKey;column:ar_u_valency" json:"ar_u_valency"`
	Role       *string   `gorm:"column:role" json:"role"`
	Note       *string   `gorm:"column:note" json:"note"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (TokenValencyLink) TableName() string { return "ar_token_valency_link" }

// TokenPairLink relates two token occurrences (idafa, agreement, ...).
type TokenPairLink struct {
	ID           string         `gorm:"primaryKey;column:id" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID  *string        `gorm:"column:container_id" json:"container_id"`
	UnitID       *string        `gorm:"column:unit_id" json:"unit_id"`
	LinkType     string         `gorm:"not null;column:link_type" json:"link_type"`
	FromTokenOcc string         `gorm:"index;not null;column:from_token_occ" json:"from_token_occ"`
	ToTokenOcc   string         `gorm:"index;not null;column:to_token_occ" json:"to_token_occ"`
	UValencyID   *string        `gorm:"column:ar_u_valency" json:"ar_u_valency"`
	Note         *string        `gorm:"column:note" json:"note"`
	MetaJSON     datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (TokenPairLink) TableName() string { return "ar_token_pair_links" }

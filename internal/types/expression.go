package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UExpression is a canonical idiom or fixed phrase.
type UExpression struct {
	ID             string         `gorm:"primaryKey;column:ar_u_expression" json:"ar_u_expression"`
	CanonicalInput string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	Label          string         `gorm:"not null;column:label" json:"label"`
	TextAr         string         `gorm:"column:text_ar" json:"text_ar"`
	SequenceJSON   datatypes.JSON `gorm:"column:sequence_json" json:"sequence_json"`
	MetaJSON       datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (UExpression) TableName() string { return "ar_u_expressions" }

type ExpressionOccurrence struct {
	ID            string         `gorm:"primaryKey;column:ar_expression_occ_id" json:"ar_expression_occ_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID   string         `gorm:"index;not null;column:container_id" json:"container_id"`
	UnitID        *string        `gorm:"index;column:unit_id" json:"unit_id"`
	StartIndex    *int           `gorm:"column:start_index" json:"start_index"`
	EndIndex      *int           `gorm:"column:end_index" json:"end_index"`
	TextCache     *string        `gorm:"column:text_cache" json:"text_cache"`
	UExpressionID string         `gorm:"index;not null;column:ar_u_expression" json:"ar_u_expression"`
	Note          *string        `gorm:"column:note" json:"note"`
	MetaJSON      datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (ExpressionOccurrence) TableName() string { return "ar_occ_expression" }

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// USpan is a canonical multi-token constituent, identified by its kind and
// ordered token-type ids.
type USpan struct {
	ID             string         `gorm:"primaryKey;column:ar_u_span" json:"ar_u_span"`
	CanonicalInput string         `gorm:"not null;column:canonical_input" json:"canonical_input"`
	SpanType       string         `gorm:"not null;column:span_type" json:"span_type"`
	TokenIDsCSV    string         `gorm:"not null;column:token_ids_csv" json:"token_ids_csv"`
	MetaJSON       datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (USpan) TableName() string { return "ar_u_spans" }

type SpanOccurrence struct {
	ID          string    `gorm:"primaryKey;column:ar_span_occ_id" json:"ar_span_occ_id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ContainerID string    `gorm:"index;not null;column:container_id" json:"container_id"`
	UnitID      *string   `gorm:"index;column:unit_id" json:"unit_id"`
	StartIndex  int       `gorm:"not null;column:start_index" json:"start_index"`
	EndIndex    int       `gorm:"not null;column:end_index" json:"end_index"`
	TextCache   *string   `gorm:"column:text_cache" json:"text_cache"`
	USpanID     *string   `gorm:"index;column:ar_u_span" json:"ar_u_span"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (SpanOccurrence) TableName() string { return "ar_occ_span" }

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Lesson is the unit of study content owned by one user. ContainerID and
// UnitID are the commit pipeline's stored pointers: each committed step
// advances them to the container/unit it resolved.
type Lesson struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	TitleAr     *string        `gorm:"column:title_ar" json:"title_ar"`
	LessonType  string         `gorm:"not null;default:'quran';column:lesson_type" json:"lesson_type"`
	Subtype     *string        `gorm:"column:subtype" json:"subtype"`
	Source      *string        `gorm:"column:source" json:"source"`
	Status      string         `gorm:"not null;default:'draft';column:status" json:"status"`
	Difficulty  *int           `gorm:"column:difficulty" json:"difficulty"`
	ContainerID *string        `gorm:"column:container_id" json:"container_id"`
	UnitID      *string        `gorm:"column:unit_id" json:"unit_id"`
	LessonJSON  datatypes.JSON `gorm:"column:lesson_json" json:"lesson_json"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "ar_lessons" }

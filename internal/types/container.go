package types

import (
	"time"

	"gorm.io/datatypes"
)

// Container is a text source (a surah, a book chapter). Created once by the
// container commit step and referenced by every later step; never deleted
// by the pipeline.
type Container struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	ContainerType string         `gorm:"not null;column:container_type" json:"container_type"`
	ContainerKey  string         `gorm:"not null;column:container_key" json:"container_key"`
	Title         *string        `gorm:"column:title" json:"title"`
	MetaJSON      datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (Container) TableName() string { return "ar_containers" }

// ContainerUnit is one ordered sub-division of a container (an ayah, a
// passage). Occurrences are scoped to a (container, unit) pair.
type ContainerUnit struct {
	ID          string         `gorm:"primaryKey;column:id" json:"id"`
	ContainerID string         `gorm:"index;not null;column:container_id" json:"container_id"`
	Container   *Container     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContainerID;references:ID" json:"-"`
	UnitType    string         `gorm:"not null;column:unit_type" json:"unit_type"`
	OrderIndex  int            `gorm:"not null;default:0;column:order_index" json:"order_index"`
	AyahFrom    *int           `gorm:"column:ayah_from" json:"ayah_from"`
	AyahTo      *int           `gorm:"column:ayah_to" json:"ayah_to"`
	StartRef    *string        `gorm:"column:start_ref" json:"start_ref"`
	EndRef      *string        `gorm:"column:end_ref" json:"end_ref"`
	TextCache   *string        `gorm:"column:text_cache" json:"text_cache"`
	MetaJSON    datatypes.JSON `gorm:"column:meta_json" json:"meta_json"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (ContainerUnit) TableName() string { return "ar_container_units" }

// LessonUnitLink attaches a lesson to the containers/units it covers.
// LinkScope "container" rows carry an empty UnitID.
type LessonUnitLink struct {
	LessonID    int64          `gorm:"primaryKey;autoIncrement:false;column:lesson_id" json:"lesson_id"`
	ContainerID string         `gorm:"primaryKey;column:container_id" json:"container_id"`
	LinkScope   string         `gorm:"primaryKey;default:'unit';column:link_scope" json:"link_scope"`
	UnitID      string         `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	OrderIndex  int            `gorm:"not null;default:0;column:order_index" json:"order_index"`
	Role        *string        `gorm:"column:role" json:"role"`
	Note        *string        `gorm:"column:note" json:"note"`
	LinkJSON    datatypes.JSON `gorm:"column:link_json" json:"link_json"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (LessonUnitLink) TableName() string { return "ar_lesson_unit_link" }

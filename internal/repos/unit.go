package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type UnitRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, unit *types.ContainerUnit) error
	ExistsInContainer(ctx context.Context, tx *gorm.DB, unitID, containerID string) (bool, error)
	UpsertLessonLink(ctx context.Context, tx *gorm.DB, link *types.LessonUnitLink) error
}

type unitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	return &unitRepo{db: db, log: baseLog.With("repo", "UnitRepo")}
}

func (r *unitRepo) Upsert(ctx context.Context, tx *gorm.DB, unit *types.ContainerUnit) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	unit.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"container_id", "unit_type", "order_index", "ayah_from", "ayah_to",
				"start_ref", "end_ref", "text_cache", "meta_json", "updated_at",
			}),
		}).
		Create(unit).Error
}

func (r *unitRepo) ExistsInContainer(ctx context.Context, tx *gorm.DB, unitID, containerID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContainerUnit{}).
		Where("id = ? AND container_id = ?", unitID, containerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *unitRepo) UpsertLessonLink(ctx context.Context, tx *gorm.DB, link *types.LessonUnitLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "lesson_id"}, {Name: "container_id"}, {Name: "link_scope"}, {Name: "unit_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_index", "role", "note", "link_json",
			}),
		}).
		Create(link).Error
}

package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type ContainerRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, container *types.Container) error
	Exists(ctx context.Context, tx *gorm.DB, containerID string) (bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, containerID string) (*types.Container, error)
}

type containerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContainerRepo(db *gorm.DB, baseLog *logger.Logger) ContainerRepo {
	return &containerRepo{db: db, log: baseLog.With("repo", "ContainerRepo")}
}

// Upsert keeps created_at from the first insert; every other column takes
// the newly supplied value.
func (r *containerRepo) Upsert(ctx context.Context, tx *gorm.DB, container *types.Container) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	container.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"container_type", "container_key", "title", "meta_json", "updated_at",
			}),
		}).
		Create(container).Error
}

func (r *containerRepo) Exists(ctx context.Context, tx *gorm.DB, containerID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Container{}).
		Where("id = ?", containerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *containerRepo) GetByID(ctx context.Context, tx *gorm.DB, containerID string) (*types.Container, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Container
	err := transaction.WithContext(ctx).
		Where("id = ?", containerID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	return &row, nil
}

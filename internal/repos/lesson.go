package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type LessonListFilter struct {
	Query      string
	LessonType string
	Limit      int
	Offset     int
}

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error)
	GetForUser(ctx context.Context, tx *gorm.DB, lessonID int64, userID uuid.UUID) (*types.Lesson, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter LessonListFilter) ([]*types.Lesson, int64, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, lessonID int64, userID uuid.UUID) error
	AdvancePointers(ctx context.Context, tx *gorm.DB, lessonID int64, containerID, unitID *string) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepo) GetForUser(ctx context.Context, tx *gorm.DB, lessonID int64, userID uuid.UUID) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Lesson
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", lessonID, userID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *lessonRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter LessonListFilter) ([]*types.Lesson, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("user_id = ?", userID)
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("(title LIKE ? OR source LIKE ?)", like, like)
	}
	switch filter.LessonType {
	case "":
	case "other":
		query = query.Where("lesson_type != ?", "quran")
	default:
		query = query.Where("lesson_type = ?", filter.LessonType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*types.Lesson
	if err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lessonID int64, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates["updated_at"] = time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", lessonID).
		Updates(updates).Error
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, lessonID int64, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", lessonID, userID).
		Delete(&types.Lesson{}).Error
}

// AdvancePointers moves the lesson's stored container/unit pointers to the
// step's resolved values. Nil inputs keep the current pointer, so pointers
// only ever move forward through a commit session.
func (r *lessonRepo) AdvancePointers(ctx context.Context, tx *gorm.DB, lessonID int64, containerID, unitID *string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if containerID != nil {
		updates["container_id"] = *containerID
	}
	if unitID != nil {
		updates["unit_id"] = *unitID
	}
	return transaction.WithContext(ctx).
		Model(&types.Lesson{}).
		Where("id = ?", lessonID).
		Updates(updates).Error
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/platform/apierr"
	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type CreateLessonInput struct {
	Title      string                 `json:"title"`
	TitleAr    *string                `json:"title_ar"`
	LessonType *string                `json:"lesson_type"`
	Subtype    *string                `json:"subtype"`
	Source     *string                `json:"source"`
	Status     *string                `json:"status"`
	Difficulty *int                   `json:"difficulty"`
	LessonJSON map[string]interface{} `json:"lesson_json"`
}

type UpdateLessonInput struct {
	Title      *string                `json:"title"`
	TitleAr    *string                `json:"title_ar"`
	LessonType *string                `json:"lesson_type"`
	Subtype    *string                `json:"subtype"`
	Source     *string                `json:"source"`
	Status     *string                `json:"status"`
	Difficulty *int                   `json:"difficulty"`
	LessonJSON map[string]interface{} `json:"lesson_json"`
}

type LessonService interface {
	Create(ctx context.Context, userID uuid.UUID, in *CreateLessonInput) (*types.Lesson, error)
	Get(ctx context.Context, userID uuid.UUID, lessonID int64) (*types.Lesson, error)
	List(ctx context.Context, userID uuid.UUID, filter repos.LessonListFilter) ([]*types.Lesson, int64, error)
	Update(ctx context.Context, userID uuid.UUID, lessonID int64, in *UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, userID uuid.UUID, lessonID int64) error
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
}

func NewLessonService(db *gorm.DB, baseLog *logger.Logger, lessonRepo repos.LessonRepo) LessonService {
	return &lessonService{
		db:         db,
		log:        baseLog.With("service", "LessonService"),
		lessonRepo: lessonRepo,
	}
}

func (ls *lessonService) Create(ctx context.Context, userID uuid.UUID, in *CreateLessonInput) (*types.Lesson, error) {
	if in == nil || firstStr(&in.Title) == "" {
		return nil, apierr.BadRequest("title is required")
	}
	lesson := &types.Lesson{
		UserID:     userID,
		Title:      firstStr(&in.Title),
		TitleAr:    clean(in.TitleAr),
		LessonType: "quran",
		Subtype:    clean(in.Subtype),
		Source:     clean(in.Source),
		Status:     "draft",
		Difficulty: clampDifficulty(in.Difficulty),
	}
	if v := firstStr(in.LessonType); v != "" {
		lesson.LessonType = v
	}
	if v := firstStr(in.Status); v != "" {
		lesson.Status = v
	}
	if in.LessonJSON != nil {
		lesson.LessonJSON = toJSON(in.LessonJSON)
	}
	created, err := ls.lessonRepo.Create(ctx, nil, lesson)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return created, nil
}

func (ls *lessonService) Get(ctx context.Context, userID uuid.UUID, lessonID int64) (*types.Lesson, error) {
	lesson, err := ls.lessonRepo.GetForUser(ctx, nil, lessonID, userID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, apierr.NotFound("lesson %d not found", lessonID)
	}
	return lesson, nil
}

func (ls *lessonService) List(ctx context.Context, userID uuid.UUID, filter repos.LessonListFilter) ([]*types.Lesson, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return ls.lessonRepo.ListForUser(ctx, nil, userID, filter)
}

func (ls *lessonService) Update(ctx context.Context, userID uuid.UUID, lessonID int64, in *UpdateLessonInput) (*types.Lesson, error) {
	lesson, err := ls.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return lesson, nil
	}
	updates := map[string]interface{}{}
	if v := firstStr(in.Title); v != "" {
		updates["title"] = v
	}
	if v := clean(in.TitleAr); v != nil {
		updates["title_ar"] = *v
	}
	if v := firstStr(in.LessonType); v != "" {
		updates["lesson_type"] = v
	}
	if v := clean(in.Subtype); v != nil {
		updates["subtype"] = *v
	}
	if v := clean(in.Source); v != nil {
		updates["source"] = *v
	}
	if v := firstStr(in.Status); v != "" {
		updates["status"] = v
	}
	if v := clampDifficulty(in.Difficulty); v != nil {
		updates["difficulty"] = *v
	}
	if in.LessonJSON != nil {
		updates["lesson_json"] = toJSON(in.LessonJSON)
	}
	if len(updates) > 0 {
		if err := ls.lessonRepo.Update(ctx, nil, lessonID, updates); err != nil {
			return nil, fmt.Errorf("failed to update lesson: %w", err)
		}
	}
	return ls.Get(ctx, userID, lessonID)
}

func (ls *lessonService) Delete(ctx context.Context, userID uuid.UUID, lessonID int64) error {
	if _, err := ls.Get(ctx, userID, lessonID); err != nil {
		return err
	}
	return ls.lessonRepo.Delete(ctx, nil, lessonID, userID)
}

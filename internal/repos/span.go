package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type SpanRepo interface {
	UpsertType(ctx context.Context, tx *gorm.DB, span *types.USpan) error
	ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.SpanOccurrence) error
}

type spanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSpanRepo(db *gorm.DB, baseLog *logger.Logger) SpanRepo {
	return &spanRepo{db: db, log: baseLog.With("repo", "SpanRepo")}
}

func (r *spanRepo) UpsertType(ctx context.Context, tx *gorm.DB, span *types.USpan) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	span.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_span"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"span_type", "token_ids_csv", "meta_json", "updated_at",
			}),
		}).
		Create(span).Error
}

func (r *spanRepo) ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.SpanOccurrence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_span_occ_id"}},
			UpdateAll: true,
		}).
		Create(occ).Error
}

package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type ExpressionRepo interface {
	UpsertType(ctx context.Context, tx *gorm.DB, expression *types.UExpression) error
	ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.ExpressionOccurrence) error
}

type expressionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpressionRepo(db *gorm.DB, baseLog *logger.Logger) ExpressionRepo {
	return &expressionRepo{db: db, log: baseLog.With("repo", "ExpressionRepo")}
}

func (r *expressionRepo) UpsertType(ctx context.Context, tx *gorm.DB, expression *types.UExpression) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	expression.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_expression"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"canonical_input", "label", "text_ar", "sequence_json", "meta_json", "updated_at",
			}),
		}).
		Create(expression).Error
}

func (r *expressionRepo) ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.ExpressionOccurrence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_expression_occ_id"}},
			UpdateAll: true,
		}).
		Create(occ).Error
}

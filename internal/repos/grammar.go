package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type GrammarRepo interface {
	UpsertConcept(ctx context.Context, tx *gorm.DB, concept *types.UGrammar) error
	ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.GrammarOccurrence) error
	ListConcepts(ctx context.Context, tx *gorm.DB, category string, limit, offset int) ([]*types.UGrammar, int64, error)
}

type grammarRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGrammarRepo(db *gorm.DB, baseLog *logger.Logger) GrammarRepo {
	return &grammarRepo{db: db, log: baseLog.With("repo", "GrammarRepo")}
}

func (r *grammarRepo) UpsertConcept(ctx context.Context, tx *gorm.DB, concept *types.UGrammar) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	concept.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_grammar"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"grammar_id", "category", "title", "title_ar",
				"definition", "definition_ar", "meta_json", "updated_at",
			}),
		}).
		Create(concept).Error
}

func (r *grammarRepo) ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.GrammarOccurrence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(occ).Error
}

func (r *grammarRepo) ListConcepts(ctx context.Context, tx *gorm.DB, category string, limit, offset int) ([]*types.UGrammar, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.UGrammar{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []*types.UGrammar
	if err := q.Order("grammar_id").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

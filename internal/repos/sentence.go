package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type SentenceRepo interface {
	UpsertType(ctx context.Context, tx *gorm.DB, sentence *types.USentence) error
	ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.SentenceOccurrence) error
}

type sentenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSentenceRepo(db *gorm.DB, baseLog *logger.Logger) SentenceRepo {
	return &sentenceRepo{db: db, log: baseLog.With("repo", "SentenceRepo")}
}

func (r *sentenceRepo) UpsertType(ctx context.Context, tx *gorm.DB, sentence *types.USentence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	sentence.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_sentence"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sentence_kind", "sequence_json", "text_ar", "meta_json", "updated_at",
			}),
		}).
		Create(sentence).Error
}

func (r *sentenceRepo) ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.SentenceOccurrence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_sentence_occ_id"}},
			UpdateAll: true,
		}).
		Create(occ).Error
}

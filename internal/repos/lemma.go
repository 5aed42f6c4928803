package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type LemmaRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, lemma *types.Lemma) error
	UpsertLocation(ctx context.Context, tx *gorm.DB, location *types.LemmaLocation) error
}

type lemmaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLemmaRepo(db *gorm.DB, baseLog *logger.Logger) LemmaRepo {
	return &lemmaRepo{db: db, log: baseLog.With("repo", "LemmaRepo")}
}

func (r *lemmaRepo) Upsert(ctx context.Context, tx *gorm.DB, lemma *types.Lemma) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lemma_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lemma_text", "lemma_text_clean", "words_count",
				"uniq_words_count", "primary_ar_u_token",
			}),
		}).
		Create(lemma).Error
}

func (r *lemmaRepo) UpsertLocation(ctx context.Context, tx *gorm.DB, location *types.LemmaLocation) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lemma_id"}, {Name: "word_location"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"surah", "ayah", "token_index", "ar_token_occ_id",
				"ar_u_token", "word_simple", "word_diacritic",
			}),
		}).
		Create(location).Error
}

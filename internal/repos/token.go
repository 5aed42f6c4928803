package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type TokenRepo interface {
	UpsertType(ctx context.Context, tx *gorm.DB, token *types.UToken) error
	ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.TokenOccurrence) error
	UpsertMorph(ctx context.Context, tx *gorm.DB, morph *types.TokenMorph) error
	DeleteMorph(ctx context.Context, tx *gorm.DB, tokenOccID string) error
	GetMorph(ctx context.Context, tx *gorm.DB, tokenOccID string) (*types.TokenMorph, error)
}

type tokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenRepo(db *gorm.DB, baseLog *logger.Logger) TokenRepo {
	return &tokenRepo{db: db, log: baseLog.With("repo", "TokenRepo")}
}

func (r *tokenRepo) UpsertType(ctx context.Context, tx *gorm.DB, token *types.UToken) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	token.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_token"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lemma_ar", "lemma_norm", "pos", "root_norm", "ar_u_root",
				"features_json", "meta_json", "updated_at",
			}),
		}).
		Create(token).Error
}

// ReplaceOccurrence overwrites the whole occurrence row on id conflict:
// resubmitting a step replaces its occurrences wholesale rather than
// merging field by field.
func (r *tokenRepo) ReplaceOccurrence(ctx context.Context, tx *gorm.DB, occ *types.TokenOccurrence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_token_occ_id"}},
			UpdateAll: true,
		}).
		Create(occ).Error
}

func (r *tokenRepo) UpsertMorph(ctx context.Context, tx *gorm.DB, morph *types.TokenMorph) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	morph.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_token_occ_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"pos", "noun_case", "noun_number", "noun_gender", "noun_definiteness",
				"verb_tense", "verb_mood", "verb_voice", "verb_person", "verb_number",
				"verb_gender", "particle_type", "extra_json", "updated_at",
			}),
		}).
		Create(morph).Error
}

func (r *tokenRepo) DeleteMorph(ctx context.Context, tx *gorm.DB, tokenOccID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("ar_token_occ_id = ?", tokenOccID).
		Delete(&types.TokenMorph{}).Error
}

func (r *tokenRepo) GetMorph(ctx context.Context, tx *gorm.DB, tokenOccID string) (*types.TokenMorph, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.TokenMorph
	err := transaction.WithContext(ctx).
		Where("ar_token_occ_id = ?", tokenOccID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.TokenOccID == "" {
		return nil, nil
	}
	return &row, nil
}

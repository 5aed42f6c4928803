package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type LinkRepo interface {
	ReplaceLexiconLink(ctx context.Context, tx *gorm.DB, link *types.TokenLexiconLink) error
	ReplaceValencyLink(ctx context.Context, tx *gorm.DB, link *types.TokenValencyLink) error
	ReplacePairLink(ctx context.Context, tx *gorm.DB, link *types.TokenPairLink) error
}

type linkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLinkRepo(db *gorm.DB, baseLog *logger.Logger) LinkRepo {
	return &linkRepo{db: db, log: baseLog.With("repo", "LinkRepo")}
}

func (r *linkRepo) ReplaceLexiconLink(ctx context.Context, tx *gorm.DB, link *types.TokenLexiconLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_token_occ_id"}, {Name: "ar_u_lexicon"}},
			UpdateAll: true,
		}).
		Create(link).Error
}

func (r *linkRepo) ReplaceValencyLink(ctx context.Context, tx *gorm.DB, link *types.TokenValencyLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ar_token_occ_id"}, {Name: "ar_u_valency"}},
			UpdateAll: true,
		}).
		Create(link).Error
}

func (r *linkRepo) ReplacePairLink(ctx context.Context, tx *gorm.DB, link *types.TokenPairLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(link).Error
}

package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type RootRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, root *types.URoot) error
	Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.URoot, int64, error)
}

type rootRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRootRepo(db *gorm.DB, baseLog *logger.Logger) RootRepo {
	return &rootRepo{db: db, log: baseLog.With("repo", "RootRepo")}
}

func (r *rootRepo) Upsert(ctx context.Context, tx *gorm.DB, root *types.URoot) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	root.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ar_u_root"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"root", "arabic_trilateral", "english_trilateral", "root_latn",
				"root_norm", "alt_latn_json", "search_keys_norm", "status",
				"difficulty", "frequency", "extracted_at", "meta_json", "updated_at",
			}),
		}).
		Create(root).Error
}

func (r *rootRepo) Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.URoot, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.URoot{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("(root LIKE ? OR root_norm LIKE ? OR root_latn LIKE ? OR search_keys_norm LIKE ?)", like, like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []*types.URoot
	if err := q.Order("root_norm").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

// DictionaryService exposes read access to the shared dictionary the commit
// pipeline populates. The dictionary is corpus-wide: results are never
// filtered by the calling user.
type DictionaryService interface {
	SearchRoots(ctx context.Context, query string, limit, offset int) ([]*types.URoot, int64, error)
	ListGrammarConcepts(ctx context.Context, category string, limit, offset int) ([]*types.UGrammar, int64, error)
}

type dictionaryService struct {
	db          *gorm.DB
	log         *logger.Logger
	rootRepo    repos.RootRepo
	grammarRepo repos.GrammarRepo
}

func NewDictionaryService(db *gorm.DB, baseLog *logger.Logger, rootRepo repos.RootRepo, grammarRepo repos.GrammarRepo) DictionaryService {
	return &dictionaryService{
		db:          db,
		log:         baseLog.With("service", "DictionaryService"),
		rootRepo:    rootRepo,
		grammarRepo: grammarRepo,
	}
}

func (ds *dictionaryService) SearchRoots(ctx context.Context, query string, limit, offset int) ([]*types.URoot, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return ds.rootRepo.Search(ctx, nil, query, limit, offset)
}

func (ds *dictionaryService) ListGrammarConcepts(ctx context.Context, category string, limit, offset int) ([]*types.UGrammar, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return ds.grammarRepo.ListConcepts(ctx, nil, category, limit, offset)
}

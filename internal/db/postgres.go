package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/qalamlabs/qalam-backend/internal/platform/envutil"
	"github.com/qalamlabs/qalam-backend/internal/platform/logger"
	"github.com/qalamlabs/qalam-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.Str("POSTGRES_HOST", "localhost")
	postgresPort := envutil.Str("POSTGRES_PORT", "5432")
	postgresUser := envutil.Str("POSTGRES_USER", "postgres")
	postgresPassword := envutil.Str("POSTGRES_PASSWORD", "")
	postgresName := envutil.Str("POSTGRES_NAME", "qalam")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(AllModels()...); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AllModels lists every table the pipeline touches; tests reuse it to
// migrate an in-memory database.
func AllModels() []interface{} {
	return []interface{}{
		&types.User{},
		&types.UserToken{},
		&types.Lesson{},
		&types.Container{},
		&types.ContainerUnit{},
		&types.LessonUnitLink{},
		&types.URoot{},
		&types.UToken{},
		&types.TokenOccurrence{},
		&types.TokenMorph{},
		&types.USpan{},
		&types.SpanOccurrence{},
		&types.USentence{},
		&types.SentenceOccurrence{},
		&types.UGrammar{},
		&types.GrammarOccurrence{},
		&types.UExpression{},
		&types.ExpressionOccurrence{},
		&types.Lemma{},
		&types.LemmaLocation{},
		&types.TokenLexiconLink{},
		&types.TokenValencyLink{},
		&types.TokenPairLink{},
	}
}

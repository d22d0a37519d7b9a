package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/types"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "portafolius", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

// AutoMigrateAll creates the two taxonomy trees plus the evaluation and
// interaction tables. Uniqueness constraints are declared on the models
// (uq_* indexes), so re-running migration on every start is safe.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Protocol{},
		&types.ScoringSection{},
		&types.ScoringItem{},
		&types.DiagnosticWindow{},
		&types.Finding{},
		&types.PossibleDiagnosis{},
		&types.Subdiagnosis{},
		&types.SubSubdiagnosis{},
		&types.ThirdOrderDiagnosis{},
		&types.EvaluationAttempt{},
		&types.EvaluationResponse{},
		&types.ClipInteraction{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/fleetscore/server/internal/validator"
	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
	sloaggregates "github.com/fleetscore/server/pkg/slo/aggregates"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	er "github.com/mcorbin/corbierror"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

type Database struct {
	db     *sqlx.DB
	Logger *slog.Logger
}

var CleanupQueries = []string{
	"TRUNCATE service CASCADE",
	"TRUNCATE schema_migrations CASCADE",
}

func (d *Database) Exec(query string) (sql.Result, error) {
	return d.db.Exec(query)
}

func New(logger *slog.Logger, config Configuration) (*Database, error) {
	err := validator.Validator.Struct(config)
	if err != nil {
		return nil, err
	}
	connectionString := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s", config.Host, config.Port, config.Username, config.Database, config.Password, config.SSLMode)
	sqlDB, err := otelsql.Open("postgres", connectionString, otelsql.WithAttributes(semconv.DBSystemNamePostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("fail to open the database: %w", err)
	}
	db := sqlx.NewDb(sqlDB, "postgres")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("fail to connect to the database: %w", err)
	}
	db.SetConnMaxLifetime(time.Duration(60) * time.Second)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", config.Migrations),
		"postgres",
		driver)
	if err != nil {
		return nil, fmt.Errorf("fail to instantiate migrations: %w", err)
	}
	logger.Info("Applying databases migrations")
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("fail to apply migrations: %w", err)
	}
	logger.Info("Migrations applied")
	return &Database{
		db:     db,
		Logger: logger,
	}, nil
}

func checkResult(result sql.Result, expected int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fail to check affected row: %w", err)
	}
	if affected != expected {
		if affected == 0 {
			return er.New("resource not found", er.NotFound, true)
		}
		return fmt.Errorf("expected %d rows changed, got %d", expected, affected)
	}
	return nil
}

func slosToString(slos []sloaggregates.SLODefinition) (*string, error) {
	if slos == nil {
		return nil, nil
	}
	b, err := json.Marshal(slos)
	if err != nil {
		return nil, fmt.Errorf("fail to serialize SLO definitions: %w", err)
	}
	result := string(b)
	return &result, nil
}

func stringToSLOs(slos *string) ([]sloaggregates.SLODefinition, error) {
	if slos == nil {
		return nil, nil
	}
	var result []sloaggregates.SLODefinition
	if err := json.Unmarshal([]byte(*slos), &result); err != nil {
		return nil, fmt.Errorf("fail to deserialize SLO definitions %s: %w", *slos, err)
	}
	return result, nil
}

func costEntriesToString(entries []costaggregates.CostEntry) (*string, error) {
	if entries == nil {
		return nil, nil
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("fail to serialize cost entries: %w", err)
	}
	result := string(b)
	return &result, nil
}

func stringToCostEntries(entries *string) ([]costaggregates.CostEntry, error) {
	if entries == nil {
		return nil, nil
	}
	var result []costaggregates.CostEntry
	if err := json.Unmarshal([]byte(*entries), &result); err != nil {
		return nil, fmt.Errorf("fail to deserialize cost entries %s: %w", *entries, err)
	}
	return result, nil
}

func checksToString(checks []govaggregates.CheckResult) (*string, error) {
	if checks == nil {
		return nil, nil
	}
	b, err := json.Marshal(checks)
	if err != nil {
		return nil, fmt.Errorf("fail to serialize governance checks: %w", err)
	}
	result := string(b)
	return &result, nil
}

func stringToChecks(checks *string) ([]govaggregates.CheckResult, error) {
	if checks == nil {
		return nil, nil
	}
	var result []govaggregates.CheckResult
	if err := json.Unmarshal([]byte(*checks), &result); err != nil {
		return nil, fmt.Errorf("fail to deserialize governance checks %s: %w", *checks, err)
	}
	return result, nil
}

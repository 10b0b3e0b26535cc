package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jouerflux/jouerflux/internal/config"
	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/models"
)

// Open connects to the store selected by cfg.
func Open(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return Connect(config.DriverPostgres, cfg.DatabaseDSN)
	default:
		return Connect(config.DriverSQLite, cfg.DatabasePath)
	}
}

// Connect opens a gorm handle for driver. Driver errors are translated so
// unique violations surface as gorm.ErrDuplicatedKey on every backend.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.Component("gorm"), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	return db, nil
}

// sqliteDSN adds a busy timeout so concurrent writers wait instead of failing.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_busy_timeout") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}

// Migrate creates or updates the schema, including the named unique
// constraint on the firewall_policy join table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Firewall{}, "Policies", &models.FirewallPolicy{}); err != nil {
		return fmt.Errorf("setup firewall_policy join table: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Firewall{},
		&models.Policy{},
		&models.Rule{},
		&models.FirewallPolicy{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection pool can reach the store.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

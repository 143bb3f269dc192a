package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the database drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bigpic/invoicing/internal/models"
)

// ConnectAndMigrate opens the database at dsn, brings the schema up to
// date and seeds the singleton settings and goals rows. If MIGRATIONS=1
// (or true/yes) schema changes run as SQL migrations via golang-migrate;
// otherwise AutoMigrate keeps the tables current, including columns added
// after the first release.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DATABASE_DSN, check the environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(DialectorFor(dsn), cfg)
		if err == nil {
			break
		}
		logrus.WithError(err).Warn("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	logrus.WithField("dsn", maskDSN(dsn)).Info("database connected")

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := upgradeColumns(db); err != nil {
			return nil, fmt.Errorf("column upgrades: %w", err)
		}
		modelsToMigrate := []interface{}{
			&models.Client{}, &models.Job{}, &models.CompanySettings{}, &models.Goals{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "jobs", "company_settings", "goals"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if err := Seed(db); err != nil {
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// Seed inserts the singleton company settings and goals rows when absent.
// Safe to run on every start; existing rows are never touched.
func Seed(db *gorm.DB) error {
	var settings models.CompanySettings
	if err := db.First(&settings, 1).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		row := models.DefaultSettings()
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed company settings: %w", err)
		}
	} else if err != nil {
		return err
	}
	var goals models.Goals
	if err := db.First(&goals, 1).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		row := models.DefaultGoals()
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed goals: %w", err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

var passwordRegex = regexp.MustCompile(`(password=)([^\s]+)`)

func maskDSN(dsn string) string {
	if strings.Contains(dsn, "password=") {
		return passwordRegex.ReplaceAllString(dsn, `${1}***`)
	}
	if u := strings.Index(dsn, "://"); u >= 0 {
		if at := strings.Index(dsn, "@"); at > u {
			return dsn[:u+3] + "***" + dsn[at:]
		}
	}
	return dsn
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", MigrateURL(dsn))
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

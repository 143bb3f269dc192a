package db

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// RunMigrations is a lightweight entry point you can invoke from tests or a small main.
// It respects the MIGRATIONS env var just like ConnectAndMigrate.
func RunMigrations() error {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return nil
	}
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v != "1" && v != "true" && v != "yes" {
		logrus.Info("MIGRATIONS env not set; skipping sql migrations (AutoMigrate path used at app start)")
		return nil
	}
	logrus.Info("running explicit SQL migrations")
	return runSQLMigrations(dsn)
}

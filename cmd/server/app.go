package main

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/server"
	"github.com/bigpic/invoicing/internal/services"
)

// newApp loads the singleton settings and goals rows and assembles the
// root handler, so main and the end-to-end tests build the same stack.
// The database must already be migrated and seeded.
func newApp(dbConn *gorm.DB) (http.Handler, error) {
	settings, err := services.NewSettingsService(dbConn)
	if err != nil {
		return nil, fmt.Errorf("load company settings: %w", err)
	}
	goals, err := services.NewGoalsService(dbConn)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return server.New(dbConn, settings, goals), nil
}

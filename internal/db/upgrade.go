package db

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// upgradeColumns adds the columns introduced after the first release to
// tables that predate them: clients.address and the invoice tracking
// fields on jobs. Fresh installs get the full tables from AutoMigrate;
// this pass covers databases created by earlier builds, checking each
// column before altering so reruns are harmless.
func upgradeColumns(db *gorm.DB) error {
	upgrades := []struct {
		model any
		table string
		field string
	}{
		{&models.Client{}, "clients", "Address"},
		{&models.Job{}, "jobs", "InvoiceNumber"},
		{&models.Job{}, "jobs", "InvoiceStatus"},
		{&models.Job{}, "jobs", "InvoiceSentDate"},
		{&models.Job{}, "jobs", "InvoicePaidDate"},
	}
	m := db.Migrator()
	for _, u := range upgrades {
		if !m.HasTable(u.table) {
			continue
		}
		if m.HasColumn(u.model, u.field) {
			continue
		}
		if err := m.AddColumn(u.model, u.field); err != nil {
			return fmt.Errorf("add column %s.%s: %w", u.table, u.field, err)
		}
		logrus.WithFields(logrus.Fields{"table": u.table, "column": u.field}).Info("schema column added")
	}
	// Jobs written before the invoice tracking columns existed start in
	// the draft state, same as new ones.
	if m.HasTable("jobs") && m.HasColumn(&models.Job{}, "InvoiceStatus") {
		err := db.Exec("UPDATE jobs SET invoice_status = 'draft' WHERE invoice_status IS NULL OR invoice_status = ''").Error
		if err != nil {
			return fmt.Errorf("backfill invoice status: %w", err)
		}
	}
	return nil
}

package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// legacySchema is the jobs/clients layout from before the invoice
// tracking release: no clients.address, no invoice columns on jobs.
const legacySchema = `
CREATE TABLE clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    hourly_rate REAL NOT NULL DEFAULT 140.00,
    notes TEXT,
    created_at DATETIME,
    updated_at DATETIME
);
CREATE TABLE jobs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME,
    updated_at DATETIME,
    client_id INTEGER NOT NULL,
    job_date DATETIME,
    description TEXT NOT NULL,
    hours REAL,
    hourly_rate REAL,
    total REAL,
    notes TEXT,
    status TEXT DEFAULT 'draft'
);
`

func TestUpgradeColumnsOnLegacyTables(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := d.Exec(legacySchema).Error; err != nil {
		t.Fatalf("create legacy schema: %v", err)
	}
	if err := d.Exec("INSERT INTO clients (name) VALUES ('Old Client')").Error; err != nil {
		t.Fatalf("insert client: %v", err)
	}
	if err := d.Exec("INSERT INTO jobs (client_id, description, hours, hourly_rate, total) VALUES (1, 'legacy work', 2, 100, 200)").Error; err != nil {
		t.Fatalf("insert job: %v", err)
	}

	if err := upgradeColumns(d); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	// Rerun must be a no-op, not an error.
	if err := upgradeColumns(d); err != nil {
		t.Fatalf("second upgrade: %v", err)
	}

	m := d.Migrator()
	if !m.HasColumn(&models.Client{}, "Address") {
		t.Fatalf("clients.address not added")
	}
	for _, field := range []string{"InvoiceNumber", "InvoiceStatus", "InvoiceSentDate", "InvoicePaidDate"} {
		if !m.HasColumn(&models.Job{}, field) {
			t.Fatalf("jobs column %s not added", field)
		}
	}

	var job models.Job
	if err := d.First(&job, 1).Error; err != nil {
		t.Fatalf("load legacy job: %v", err)
	}
	if job.InvoiceStatus != models.InvoiceStatusDraft {
		t.Fatalf("legacy job not backfilled to draft, got %q", job.InvoiceStatus)
	}
	if job.InvoiceNumber != nil {
		t.Fatalf("legacy job should have no invoice number, got %d", *job.InvoiceNumber)
	}
	if job.Total != 200 {
		t.Fatalf("legacy data lost: total=%v", job.Total)
	}
}

func TestUpgradeColumnsFreshDatabase(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// No tables at all: the pass must skip quietly and leave creation to
	// AutoMigrate.
	if err := upgradeColumns(d); err != nil {
		t.Fatalf("upgrade on empty db: %v", err)
	}
	if d.Migrator().HasTable("jobs") {
		t.Fatalf("upgrade created tables it should not own")
	}
}

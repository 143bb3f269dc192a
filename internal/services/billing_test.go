package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

func setupBillingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBillingJob(t *testing.T, db *gorm.DB, hours, rate float64) *models.Job {
	t.Helper()
	client := models.Client{Name: "Billing Client", HourlyRate: rate}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	job := models.Job{
		ClientID:      client.ID,
		JobDate:       time.Now(),
		Description:   "consulting",
		Hours:         hours,
		HourlyRate:    rate,
		Total:         hours * rate,
		InvoiceStatus: models.InvoiceStatusDraft,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("job: %v", err)
	}
	return &job
}

func TestComputeTotalExact(t *testing.T) {
	svc := NewBillingService(nil)
	cases := []struct {
		hours, rate, want float64
	}{
		{3, 100, 300},
		{0, 140, 0},
		{3.5, 142.50, 498.75},
		{1.5, 140, 210},
		// float64 multiplication alone gives 0.020000000000000004 here.
		{0.1, 0.2, 0.02},
	}
	for _, c := range cases {
		if got := svc.ComputeTotal(c.hours, c.rate); got != c.want {
			t.Fatalf("ComputeTotal(%v, %v) = %v, want %v", c.hours, c.rate, got, c.want)
		}
	}
}

func TestNextInvoiceNumberSequence(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := NewBillingService(db)

	next, err := svc.NextInvoiceNumber(db)
	if err != nil {
		t.Fatalf("next on empty: %v", err)
	}
	if next != 1 {
		t.Fatalf("expected 1 on empty table got %d", next)
	}

	for want := int64(1); want <= 3; want++ {
		job := seedBillingJob(t, db, 1, 100)
		if err := svc.EnsureInvoiceNumber(db, job); err != nil {
			t.Fatalf("assign #%d: %v", want, err)
		}
		if job.InvoiceNumber == nil || *job.InvoiceNumber != want {
			t.Fatalf("expected number %d got %v", want, job.InvoiceNumber)
		}
	}

	// Next always derives from the current max, even after a gap.
	manual := int64(41)
	job := seedBillingJob(t, db, 1, 100)
	if err := db.Model(job).Update("invoice_number", manual).Error; err != nil {
		t.Fatalf("manual number: %v", err)
	}
	next, err = svc.NextInvoiceNumber(db)
	if err != nil {
		t.Fatalf("next after gap: %v", err)
	}
	if next != 42 {
		t.Fatalf("expected 42 got %d", next)
	}
}

func TestEnsureInvoiceNumberAssignsOnce(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := NewBillingService(db)
	job := seedBillingJob(t, db, 2, 100)

	if err := svc.EnsureInvoiceNumber(db, job); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	first := *job.InvoiceNumber
	if err := svc.EnsureInvoiceNumber(db, job); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if *job.InvoiceNumber != first {
		t.Fatalf("number changed from %d to %d", first, *job.InvoiceNumber)
	}
	var stored models.Job
	if err := db.First(&stored, job.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.InvoiceNumber == nil || *stored.InvoiceNumber != first {
		t.Fatalf("persisted number mismatch: %v", stored.InvoiceNumber)
	}
}

func TestTransitionInvoiceStatusStampsDates(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := NewBillingService(db)
	job := seedBillingJob(t, db, 2, 100)
	today := time.Now().Format("2006-01-02")

	sent, err := svc.TransitionInvoiceStatus(job.ID, models.InvoiceStatusSent)
	if err != nil {
		t.Fatalf("sent: %v", err)
	}
	if sent.InvoiceNumber == nil || *sent.InvoiceNumber != 1 {
		t.Fatalf("transition should assign the number, got %v", sent.InvoiceNumber)
	}
	if sent.InvoiceSentDate == nil || sent.InvoiceSentDate.Format("2006-01-02") != today {
		t.Fatalf("sent date not stamped: %v", sent.InvoiceSentDate)
	}
	if sent.InvoicePaidDate != nil {
		t.Fatalf("paid date should stay empty on sent, got %v", sent.InvoicePaidDate)
	}

	paid, err := svc.TransitionInvoiceStatus(job.ID, models.InvoiceStatusPaid)
	if err != nil {
		t.Fatalf("paid: %v", err)
	}
	if paid.InvoicePaidDate == nil || paid.InvoicePaidDate.Format("2006-01-02") != today {
		t.Fatalf("paid date not stamped: %v", paid.InvoicePaidDate)
	}
	if paid.InvoiceSentDate == nil {
		t.Fatalf("paid must leave the sent date as-is")
	}

	back, err := svc.TransitionInvoiceStatus(job.ID, models.InvoiceStatusDraft)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if back.InvoiceSentDate != nil || back.InvoicePaidDate != nil {
		t.Fatalf("draft must clear both dates: sent=%v paid=%v", back.InvoiceSentDate, back.InvoicePaidDate)
	}
	if back.InvoiceNumber == nil || *back.InvoiceNumber != 1 {
		t.Fatalf("number must survive the reset, got %v", back.InvoiceNumber)
	}
}

func TestTransitionInvoiceStatusRejectsUnknown(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := NewBillingService(db)
	job := seedBillingJob(t, db, 1, 100)

	if _, err := svc.TransitionInvoiceStatus(job.ID, "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus got %v", err)
	}
	if _, err := svc.TransitionInvoiceStatus(99999, models.InvoiceStatusSent); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found got %v", err)
	}
	// The invalid transition must not have touched the row.
	var stored models.Job
	if err := db.First(&stored, job.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.InvoiceNumber != nil || stored.InvoiceStatus != models.InvoiceStatusDraft {
		t.Fatalf("rejected transition mutated the job: %+v", stored)
	}
}

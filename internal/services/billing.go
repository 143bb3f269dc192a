package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// BillingService encapsulates the billing rules shared across handlers:
// job totals, invoice number assignment and invoice status transitions.
type BillingService struct{ DB *gorm.DB }

func NewBillingService(db *gorm.DB) *BillingService { return &BillingService{DB: db} }

var ErrInvalidStatus = errors.New("invalid status")

// ComputeTotal returns hours * rate. Decimal arithmetic keeps the
// product exact for money values that float multiplication would smear.
func (s *BillingService) ComputeTotal(hours, rate float64) float64 {
	total, _ := decimal.NewFromFloat(hours).Mul(decimal.NewFromFloat(rate)).Float64()
	return total
}

// NextInvoiceNumber returns max(assigned)+1, starting at 1 on an empty
// table. Derived from the data rather than a sequence; unique only under
// the single-writer deployment this app assumes.
func (s *BillingService) NextInvoiceNumber(tx *gorm.DB) (int64, error) {
	var next int64
	err := tx.Model(&models.Job{}).
		Select("COALESCE(MAX(invoice_number), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return next, nil
}

// EnsureInvoiceNumber assigns the next invoice number to job if it has
// none yet and persists it. Once assigned the number never changes.
func (s *BillingService) EnsureInvoiceNumber(tx *gorm.DB, job *models.Job) error {
	if job.InvoiceNumber != nil {
		return nil
	}
	next, err := s.NextInvoiceNumber(tx)
	if err != nil {
		return err
	}
	if err := tx.Model(job).Update("invoice_number", next).Error; err != nil {
		return fmt.Errorf("assign invoice number: %w", err)
	}
	job.InvoiceNumber = &next
	return nil
}

// TransitionInvoiceStatus moves a job's invoice to status and stamps the
// matching dates: sent sets the sent date, paid sets the paid date, and
// draft clears both. The invoice number is assigned first if missing.
func (s *BillingService) TransitionInvoiceStatus(jobID uint, status models.InvoiceStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	var job models.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.EnsureInvoiceNumber(tx, &job); err != nil {
			return err
		}
		updates := map[string]interface{}{"invoice_status": status}
		switch status {
		case models.InvoiceStatusSent:
			updates["invoice_sent_date"] = today()
		case models.InvoiceStatusPaid:
			updates["invoice_paid_date"] = today()
		case models.InvoiceStatusDraft:
			updates["invoice_sent_date"] = nil
			updates["invoice_paid_date"] = nil
		}
		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return fmt.Errorf("update invoice status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// today returns the current date truncated to midnight local time; the
// invoice dates carry no time-of-day component.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

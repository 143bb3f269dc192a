package models

import "fmt"

// InvoiceStatus represents the billing state of a job's invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known invoice states.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// FormatInvoiceNumber renders an assigned invoice number for display.
// Format: INV-NNNN (e.g. INV-0007).
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%04d", n)
}

package models

import "time"

// Job is a unit of billable work for a client. Each job doubles as the
// invoice line it will be billed on: the invoice tracking fields stay
// empty until a number is assigned.
type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"-"`

	JobDate     time.Time `gorm:"index" json:"job_date"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Hours       float64   `json:"hours"`
	HourlyRate  float64   `json:"hourly_rate"`
	// Total is always hours * hourly_rate, recomputed on every write.
	Total  float64 `json:"total"`
	Notes  string  `gorm:"type:text" json:"notes"`
	Status string  `gorm:"size:50;default:'draft'" json:"status"`

	// Invoice tracking. InvoiceNumber is nil until first assignment and
	// never changes afterwards.
	InvoiceNumber   *int64        `gorm:"uniqueIndex" json:"invoice_number"`
	InvoiceStatus   InvoiceStatus `gorm:"size:20;default:'draft'" json:"invoice_status"`
	InvoiceSentDate *time.Time    `json:"invoice_sent_date"`
	InvoicePaidDate *time.Time    `json:"invoice_paid_date"`
}

// Invoiced returns true once the job has an invoice number assigned.
func (j *Job) Invoiced() bool {
	return j.InvoiceNumber != nil
}

// IsPaid returns true if the job's invoice has been marked paid.
func (j *Job) IsPaid() bool {
	return j.InvoiceStatus == InvoiceStatusPaid
}

// JobWithClient is a job row joined with client fields for read endpoints.
// List reads fill only ClientName; the detail read fills the rest.
type JobWithClient struct {
	Job
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`
}

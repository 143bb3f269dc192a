package models

import "time"

// CompanySettings is the single row (id = 1) holding the business
// identity printed on invoices and the default hourly rate applied to
// new clients and jobs.
type CompanySettings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyName       string    `gorm:"size:255;not null" json:"company_name"`
	OwnerName         string    `gorm:"size:255" json:"owner_name"`
	Address           string    `gorm:"size:500" json:"address"`
	Phone             string    `gorm:"size:50" json:"phone"`
	Email             string    `gorm:"size:255" json:"email"`
	DefaultHourlyRate float64   `gorm:"not null;default:140.00" json:"default_hourly_rate"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings row seeded on first run. The
// same values back-fill absent fields on settings updates.
func DefaultSettings() CompanySettings {
	return CompanySettings{
		ID:                1,
		CompanyName:       "Big Pic Solutions",
		OwnerName:         "Daryll Gomas",
		Address:           "4116 SE 79th Ave, Portland, Oregon 97206",
		Phone:             "727-475-4153",
		Email:             "daryll.gomas@gmail.com",
		DefaultHourlyRate: 140.00,
	}
}

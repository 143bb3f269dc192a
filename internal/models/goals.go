package models

import "time"

// Goals is the single row (id = 1) holding the yearly revenue targets.
// The API derives monthly, weekly and daily figures from it; the row
// itself is read-only after seeding.
type Goals struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	YearlyNetGoal   float64   `gorm:"not null" json:"yearly_net_goal"`
	YearlyGrossGoal float64   `gorm:"not null" json:"yearly_gross_goal"`
	TaxRate         float64   `gorm:"not null" json:"tax_rate"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultGoals returns the goals row seeded on first run.
func DefaultGoals() Goals {
	return Goals{
		ID:              1,
		YearlyNetGoal:   30000.00,
		YearlyGrossGoal: 43500.00,
		TaxRate:         0.31,
	}
}

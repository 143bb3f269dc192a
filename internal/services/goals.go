package services

import (
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// GoalsService serves the singleton revenue goals row, cached at startup
// the same way company settings are. The row is read-only after seeding.
type GoalsService struct {
	DB *gorm.DB

	mu      sync.RWMutex
	current models.Goals
}

// NewGoalsService loads the goals row and returns the service.
func NewGoalsService(db *gorm.DB) (*GoalsService, error) {
	g := &GoalsService{DB: db}
	var row models.Goals
	if err := db.First(&row, 1).Error; err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.current = row
	g.mu.Unlock()
	return g, nil
}

// Current returns the cached goals row.
func (g *GoalsService) Current() models.Goals {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// GoalsBreakdown flattens the yearly targets into per-period figures.
type GoalsBreakdown struct {
	YearlyGross  float64 `json:"yearly_gross"`
	YearlyNet    float64 `json:"yearly_net"`
	MonthlyGross float64 `json:"monthly_gross"`
	MonthlyNet   float64 `json:"monthly_net"`
	WeeklyGross  float64 `json:"weekly_gross"`
	WeeklyNet    float64 `json:"weekly_net"`
	DailyGross   float64 `json:"daily_gross"`
	DailyNet     float64 `json:"daily_net"`
	TaxRate      float64 `json:"tax_rate"`
}

// Breakdown derives monthly (/12), weekly (/52) and daily (/365) figures
// from the yearly goals, each rounded to cents. The tax rate passes
// through unmodified and is not applied to any figure.
func (g *GoalsService) Breakdown() GoalsBreakdown {
	row := g.Current()
	gross := decimal.NewFromFloat(row.YearlyGrossGoal)
	net := decimal.NewFromFloat(row.YearlyNetGoal)
	return GoalsBreakdown{
		YearlyGross:  row.YearlyGrossGoal,
		YearlyNet:    row.YearlyNetGoal,
		MonthlyGross: perPeriod(gross, 12),
		MonthlyNet:   perPeriod(net, 12),
		WeeklyGross:  perPeriod(gross, 52),
		WeeklyNet:    perPeriod(net, 52),
		DailyGross:   perPeriod(gross, 365),
		DailyNet:     perPeriod(net, 365),
		TaxRate:      row.TaxRate,
	}
}

func perPeriod(yearly decimal.Decimal, periods int64) float64 {
	f, _ := yearly.Div(decimal.NewFromInt(periods)).Round(2).Float64()
	return f
}

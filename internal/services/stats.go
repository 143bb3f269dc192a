package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// StatsService computes the dashboard aggregates over jobs and clients.
type StatsService struct{ DB *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{DB: db} }

// DashboardStats is the aggregate snapshot shown on the dashboard.
// Revenue figures are rounded to cents; empty tables yield zeros.
type DashboardStats struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalHours   float64 `json:"total_hours"`
	TotalClients int64   `json:"total_clients"`
	TotalJobs    int64   `json:"total_jobs"`
	YearRevenue  float64 `json:"year_revenue"`
	MonthRevenue float64 `json:"month_revenue"`
	WeekRevenue  float64 `json:"week_revenue"`
}

// Dashboard aggregates totals plus revenue for the calendar year and
// month containing now and for the trailing seven days. Windows compare
// against job_date, so jobs dated in the current periods count even if
// entered later.
func (s *StatsService) Dashboard(now time.Time) (DashboardStats, error) {
	var out DashboardStats

	var agg struct {
		Revenue float64
		Hours   float64
		Jobs    int64
	}
	err := s.DB.Model(&models.Job{}).
		Select("COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(hours), 0) AS hours, COUNT(*) AS jobs").
		Scan(&agg).Error
	if err != nil {
		return out, fmt.Errorf("job totals: %w", err)
	}
	out.TotalRevenue = roundCents(agg.Revenue)
	out.TotalHours = roundCents(agg.Hours)
	out.TotalJobs = agg.Jobs

	if err := s.DB.Model(&models.Client{}).Count(&out.TotalClients).Error; err != nil {
		return out, fmt.Errorf("client count: %w", err)
	}

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)

	if out.YearRevenue, err = s.revenueBetween(yearStart, yearStart.AddDate(1, 0, 0)); err != nil {
		return out, err
	}
	if out.MonthRevenue, err = s.revenueBetween(monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return out, err
	}
	if out.WeekRevenue, err = s.revenueSince(weekStart); err != nil {
		return out, err
	}
	return out, nil
}

func (s *StatsService) revenueBetween(from, to time.Time) (float64, error) {
	var revenue float64
	err := s.DB.Model(&models.Job{}).
		Where("job_date >= ? AND job_date < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("revenue window: %w", err)
	}
	return roundCents(revenue), nil
}

// revenueSince has no upper bound: future-dated jobs inside the trailing
// week window count, mirroring how the weekly figure has always behaved.
func (s *StatsService) revenueSince(from time.Time) (float64, error) {
	var revenue float64
	err := s.DB.Model(&models.Job{}).
		Where("job_date >= ?", from).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("revenue window: %w", err)
	}
	return roundCents(revenue), nil
}

func roundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

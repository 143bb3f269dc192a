package main

// Helper: go run ./cmd/server -recompute-totals
// Rewrites job totals as hours * hourly_rate where the stored value
// drifted, e.g. after a hand-edited import of the legacy database.

import (
	"flag"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
	"github.com/bigpic/invoicing/internal/services"
)

var recomputeTotalsFlag = flag.Bool("recompute-totals", false, "Recompute stored job totals and exit")

func runRecomputeTotals(conn *gorm.DB) {
	billing := services.NewBillingService(conn)
	var jobs []models.Job
	if err := conn.Find(&jobs).Error; err != nil {
		logrus.WithError(err).Fatal("list jobs")
	}
	updated := 0
	for _, j := range jobs {
		want := billing.ComputeTotal(j.Hours, j.HourlyRate)
		if j.Total == want {
			continue
		}
		if err := conn.Model(&models.Job{}).Where("id = ?", j.ID).Update("total", want).Error; err != nil {
			logrus.WithError(err).WithField("job", j.ID).Warn("recompute failed")
			continue
		}
		updated++
	}
	logrus.WithField("updated", updated).Info("total recompute done")
}

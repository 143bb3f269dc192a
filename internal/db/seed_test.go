package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.CompanySettings{}, &models.Goals{}); err != nil {
		t.Fatal(err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var settingsCount, goalsCount int64
	d.Model(&models.CompanySettings{}).Count(&settingsCount)
	d.Model(&models.Goals{}).Count(&goalsCount)
	if settingsCount != 1 || goalsCount != 1 {
		t.Fatalf("singleton rows duplicated or missing: settings=%d goals=%d", settingsCount, goalsCount)
	}
	var settings models.CompanySettings
	if err := d.First(&settings, 1).Error; err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.CompanyName != "Big Pic Solutions" || settings.DefaultHourlyRate != 140.00 {
		t.Fatalf("unexpected seeded settings: %+v", settings)
	}
	var goals models.Goals
	if err := d.First(&goals, 1).Error; err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if goals.YearlyNetGoal != 30000.00 || goals.YearlyGrossGoal != 43500.00 || goals.TaxRate != 0.31 {
		t.Fatalf("unexpected seeded goals: %+v", goals)
	}
}

func TestSeedKeepsEditedRows(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.CompanySettings{}, &models.Goals{}); err != nil {
		t.Fatal(err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := d.Model(&models.CompanySettings{}).Where("id = ?", 1).Update("company_name", "Edited Co").Error; err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var settings models.CompanySettings
	if err := d.First(&settings, 1).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.CompanyName != "Edited Co" {
		t.Fatalf("seed overwrote an edited row: %q", settings.CompanyName)
	}
}

package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/models"
)

// SettingsService serves the singleton company settings row. The row is
// read once at startup and cached; updates write through to the database
// and refresh the cached copy, so operations never re-read it per request.
type SettingsService struct {
	DB *gorm.DB

	mu      sync.RWMutex
	current models.CompanySettings
}

// NewSettingsService loads the settings row and returns the service.
// Fails when the row is missing, so callers can rely on Current.
func NewSettingsService(db *gorm.DB) (*SettingsService, error) {
	s := &SettingsService{DB: db}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the settings row from the database into the cache.
func (s *SettingsService) Reload() error {
	var row models.CompanySettings
	if err := s.DB.First(&row, 1).Error; err != nil {
		return err
	}
	s.mu.Lock()
	s.current = row
	s.mu.Unlock()
	return nil
}

// Current returns the cached settings row.
func (s *SettingsService) Current() models.CompanySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// DefaultRate returns the configured default hourly rate, applied to
// clients and jobs created without one.
func (s *SettingsService) DefaultRate() float64 {
	return s.Current().DefaultHourlyRate
}

// Update replaces the mutable settings fields and refreshes the cache.
// Zero values overwrite; absent-field defaulting is the caller's concern.
func (s *SettingsService) Update(in models.CompanySettings) (models.CompanySettings, error) {
	err := s.DB.Model(&models.CompanySettings{}).Where("id = ?", 1).
		Select("CompanyName", "OwnerName", "Address", "Phone", "Email", "DefaultHourlyRate").
		Updates(in).Error
	if err != nil {
		return models.CompanySettings{}, err
	}
	if err := s.Reload(); err != nil {
		return models.CompanySettings{}, err
	}
	return s.Current(), nil
}

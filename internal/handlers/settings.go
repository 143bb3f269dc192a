package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/models"
	"github.com/bigpic/invoicing/internal/services"
)

// SettingsHandler serves the company settings and goals endpoints. Both
// read from the in-process caches loaded at startup.
type SettingsHandler struct {
	Settings *services.SettingsService
	Goals    *services.GoalsService
}

func NewSettingsHandler(settings *services.SettingsService, goals *services.GoalsService) *SettingsHandler {
	return &SettingsHandler{Settings: settings, Goals: goals}
}

// Get: GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := h.Settings.Current()
	if current.ID == 0 {
		httpx.Error(w, http.StatusNotFound, "Settings not found")
		return
	}
	httpx.JSON(w, http.StatusOK, current)
}

// Update: PUT /api/settings – full replace. Fields absent from the body
// fall back to the seeded defaults for the identity fields and to empty
// strings for the contact fields.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	defaults := models.DefaultSettings()
	in := struct {
		CompanyName       string  `json:"company_name"`
		OwnerName         string  `json:"owner_name"`
		Address           string  `json:"address"`
		Phone             string  `json:"phone"`
		Email             string  `json:"email"`
		DefaultHourlyRate float64 `json:"default_hourly_rate"`
	}{
		CompanyName:       defaults.CompanyName,
		OwnerName:         defaults.OwnerName,
		DefaultHourlyRate: defaults.DefaultHourlyRate,
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	_, err := h.Settings.Update(models.CompanySettings{
		CompanyName:       in.CompanyName,
		OwnerName:         in.OwnerName,
		Address:           in.Address,
		Phone:             in.Phone,
		Email:             in.Email,
		DefaultHourlyRate: in.DefaultHourlyRate,
	})
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// GetGoals: GET /api/goals – the yearly targets with derived breakdowns.
func (h *SettingsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Goals.Breakdown())
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/models"
	"github.com/bigpic/invoicing/internal/services"
	"github.com/bigpic/invoicing/internal/validation"
)

// ClientHandler serves the /api/clients endpoints.
type ClientHandler struct {
	DB       *gorm.DB
	Settings *services.SettingsService
}

func NewClientHandler(db *gorm.DB, settings *services.SettingsService) *ClientHandler {
	return &ClientHandler{DB: db, Settings: settings}
}

type clientInput struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	HourlyRate float64 `json:"hourly_rate"`
	Notes      string  `json:"notes"`
}

// List: GET /api/clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients := []models.Client{}
	if err := h.DB.Order("name").Find(&clients).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Client not found")
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Client not found")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.Failure(w, http.StatusBadRequest, v.Message())
		return
	}
	rate := in.HourlyRate
	if rate <= 0 {
		rate = h.Settings.DefaultRate()
	}
	client := models.Client{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		HourlyRate: rate,
		Notes:      in.Notes,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "id": client.ID})
}

// Update: PUT /api/clients/{id} – full replace of the mutable fields.
// An id with no row behind it updates nothing and still succeeds.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.Failure(w, http.StatusBadRequest, v.Message())
		return
	}
	rate := in.HourlyRate
	if rate <= 0 {
		rate = h.Settings.DefaultRate()
	}
	updates := map[string]interface{}{
		"name":        in.Name,
		"email":       in.Email,
		"phone":       in.Phone,
		"address":     in.Address,
		"hourly_rate": rate,
		"notes":       in.Notes,
	}
	if err := h.DB.Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

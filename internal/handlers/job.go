package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/models"
	"github.com/bigpic/invoicing/internal/pdf"
	"github.com/bigpic/invoicing/internal/services"
	"github.com/bigpic/invoicing/internal/validation"
)

// JobHandler serves the /api/jobs endpoints, including the invoice
// status transitions and the PDF download.
type JobHandler struct {
	DB       *gorm.DB
	Billing  *services.BillingService
	Settings *services.SettingsService
}

func NewJobHandler(db *gorm.DB, billing *services.BillingService, settings *services.SettingsService) *JobHandler {
	return &JobHandler{DB: db, Billing: billing, Settings: settings}
}

type jobInput struct {
	ClientID    uint    `json:"client_id"`
	JobDate     string  `json:"job_date"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status"`
}

// List: GET /api/jobs?client_id= – newest service date first.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Model(&models.Job{}).
		Select("jobs.*, clients.name AS client_name").
		Joins("JOIN clients ON clients.id = jobs.client_id").
		Order("jobs.job_date DESC")
	if cid := r.URL.Query().Get("client_id"); cid != "" {
		q = q.Where("jobs.client_id = ?", cid)
	}
	jobs := []models.JobWithClient{}
	if err := q.Scan(&jobs).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, jobs)
}

// Get: GET /api/jobs/{id} – joined with the client contact fields.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Job not found")
		return
	}
	var job models.JobWithClient
	err = h.DB.Model(&models.Job{}).
		Select("jobs.*, clients.name AS client_name, clients.email AS client_email, clients.phone AS client_phone, clients.address AS client_address").
		Joins("JOIN clients ON clients.id = jobs.client_id").
		Where("jobs.id = ?", id).
		Take(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

// Create: POST /api/jobs – computes the total and assigns the invoice
// number in the same transaction as the insert.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in jobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	v := validation.Violations{}
	validation.RequiredID("client_id", in.ClientID, v)
	validation.Required("description", in.Description, v)
	validation.NonNegativeFloat("hours", in.Hours, v)
	if !v.Empty() {
		httpx.Failure(w, http.StatusBadRequest, v.Message())
		return
	}
	jobDate, err := parseDate(in.JobDate)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "job_date must be "+dateFormat)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Failure(w, http.StatusBadRequest, "client does not exist")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	rate := in.HourlyRate
	if rate <= 0 {
		rate = h.Settings.DefaultRate()
	}
	job := models.Job{
		ClientID:      in.ClientID,
		JobDate:       jobDate,
		Description:   in.Description,
		Hours:         in.Hours,
		HourlyRate:    rate,
		Total:         h.Billing.ComputeTotal(in.Hours, rate),
		Notes:         in.Notes,
		Status:        "draft",
		InvoiceStatus: models.InvoiceStatusDraft,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		return h.Billing.EnsureInvoiceNumber(tx, &job)
	})
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"id":             job.ID,
		"invoice_number": job.InvoiceNumber,
	})
}

// Update: PUT /api/jobs/{id} – full replace of the core fields with the
// total recomputed. Invoice tracking fields are never touched here.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid job id")
		return
	}
	var in jobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	v := validation.Violations{}
	validation.Required("description", in.Description, v)
	validation.NonNegativeFloat("hours", in.Hours, v)
	if !v.Empty() {
		httpx.Failure(w, http.StatusBadRequest, v.Message())
		return
	}
	jobDate, err := parseDate(in.JobDate)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "job_date must be "+dateFormat)
		return
	}
	rate := in.HourlyRate
	if rate <= 0 {
		rate = h.Settings.DefaultRate()
	}
	status := in.Status
	if status == "" {
		status = "draft"
	}
	updates := map[string]interface{}{
		"job_date":    jobDate,
		"description": in.Description,
		"hours":       in.Hours,
		"hourly_rate": rate,
		"total":       h.Billing.ComputeTotal(in.Hours, rate),
		"notes":       in.Notes,
		"status":      status,
	}
	if err := h.DB.Model(&models.Job{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete: DELETE /api/jobs/{id} – deleting an absent id is a no-op and
// still reports success.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid job id")
		return
	}
	if err := h.DB.Delete(&models.Job{}, id).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

type statusInput struct {
	Status string `json:"status"`
}

// UpdateStatus: PUT /api/jobs/{id}/status – moves the invoice through
// draft/sent/paid and stamps the matching dates.
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Job not found")
		return
	}
	var in statusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Failure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	job, err := h.Billing.TransitionInvoiceStatus(id, models.InvoiceStatus(in.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"invoice_number": job.InvoiceNumber,
		"status":         job.InvoiceStatus,
	})
}

// PDF: GET /api/jobs/{id}/pdf – renders the invoice, assigning the
// invoice number first if this job never had one.
func (h *JobHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Job not found")
		return
	}
	var job models.Job
	if err := h.DB.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	var client models.Client
	if err := h.DB.First(&client, job.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Error(w, http.StatusNotFound, "Client not found")
			return
		}
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	if job.InvoiceNumber == nil {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			return h.Billing.EnsureInvoiceNumber(tx, &job)
		})
		if err != nil {
			httpx.Failure(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	settings := h.Settings.Current()
	number := models.FormatInvoiceNumber(*job.InvoiceNumber)
	data := pdf.InvoiceData{
		InvoiceNumber: number,
		Date:          time.Now().Format(dateFormat),
		ServiceDate:   formatDate(job.JobDate),
		Status:        string(job.InvoiceStatus),
		Description:   job.Description,
		Hours:         job.Hours,
		Rate:          job.HourlyRate,
		Total:         job.Total,
		Notes:         job.Notes,
		Paid:          job.IsPaid(),
		Client: pdf.ClientData{
			Name:    client.Name,
			Address: client.Address,
			Email:   client.Email,
			Phone:   client.Phone,
		},
		Company: pdf.CompanyData{
			Name:    settings.CompanyName,
			Owner:   settings.OwnerName,
			Address: settings.Address,
			Phone:   settings.Phone,
			Email:   settings.Email,
		},
	}
	out, err := pdf.InvoicePDF(data)
	if err != nil {
		httpx.Failure(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"Invoice-%s.pdf\"", number))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

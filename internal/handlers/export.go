package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/models"
)

// ExportHandler serves the CSV downloads under /api/export.
type ExportHandler struct{ DB *gorm.DB }

func NewExportHandler(db *gorm.DB) *ExportHandler { return &ExportHandler{DB: db} }

const timestampFormat = "2006-01-02 15:04:05"

// Clients: GET /api/export/clients – all clients ordered by name.
func (h *ExportHandler) Clients(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("name").Find(&clients).Error; err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"ID", "Name", "Email", "Phone", "Address", "Hourly Rate", "Notes", "Created At", "Updated At"})
	for _, c := range clients {
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			c.Email,
			c.Phone,
			c.Address,
			money(c.HourlyRate),
			c.Notes,
			c.CreatedAt.Format(timestampFormat),
			c.UpdatedAt.Format(timestampFormat),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		httpx.Failure(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendCSV(w, "clients_export", buf.Bytes())
}

// Jobs: GET /api/export/jobs – all jobs with the client name, newest
// service date first. The join is outer so jobs survive a vanished
// client with an empty name cell.
func (h *ExportHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	var jobs []models.JobWithClient
	err := h.DB.Model(&models.Job{}).
		Select("jobs.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = jobs.client_id").
		Order("jobs.job_date DESC").
		Scan(&jobs).Error
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"ID", "Client Name", "Job Date", "Description", "Hours", "Hourly Rate", "Total", "Notes", "Status", "Invoice Number", "Invoice Status", "Created At"})
	for _, j := range jobs {
		number := ""
		if j.InvoiceNumber != nil {
			number = strconv.FormatInt(*j.InvoiceNumber, 10)
		}
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(j.ID), 10),
			j.ClientName,
			formatDate(j.JobDate),
			j.Description,
			money(j.Hours),
			money(j.HourlyRate),
			money(j.Total),
			j.Notes,
			j.Status,
			number,
			string(j.InvoiceStatus),
			j.CreatedAt.Format(timestampFormat),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		httpx.Failure(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendCSV(w, "jobs_export", buf.Bytes())
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sendCSV(w http.ResponseWriter, prefix string, body []byte) {
	filename := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

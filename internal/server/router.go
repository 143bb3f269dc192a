package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bigpic/invoicing/internal/handlers"
	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/services"
	"github.com/bigpic/invoicing/internal/view"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. The settings and goals services arrive pre-loaded from main
// so every operation works off the startup copies.
func New(db *gorm.DB, settings *services.SettingsService, goals *services.GoalsService) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check; detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Client endpoints
	ch := handlers.NewClientHandler(db, settings)
	mux.HandleFunc("GET /api/clients", ch.List)
	mux.HandleFunc("POST /api/clients", ch.Create)
	mux.HandleFunc("GET /api/clients/{id}", ch.Get)
	mux.HandleFunc("PUT /api/clients/{id}", ch.Update)

	// Job endpoints, including invoice status and PDF
	billing := services.NewBillingService(db)
	jh := handlers.NewJobHandler(db, billing, settings)
	mux.HandleFunc("GET /api/jobs", jh.List)
	mux.HandleFunc("POST /api/jobs", jh.Create)
	mux.HandleFunc("GET /api/jobs/{id}", jh.Get)
	mux.HandleFunc("PUT /api/jobs/{id}", jh.Update)
	mux.HandleFunc("DELETE /api/jobs/{id}", jh.Delete)
	mux.HandleFunc("PUT /api/jobs/{id}/status", jh.UpdateStatus)
	mux.HandleFunc("GET /api/jobs/{id}/pdf", jh.PDF)

	// Settings and goals
	sh := handlers.NewSettingsHandler(settings, goals)
	mux.HandleFunc("GET /api/settings", sh.Get)
	mux.HandleFunc("PUT /api/settings", sh.Update)
	mux.HandleFunc("GET /api/goals", sh.GetGoals)

	// Dashboard stats
	st := handlers.NewStatsHandler(services.NewStatsService(db))
	mux.HandleFunc("GET /api/stats", st.Dashboard)

	// CSV exports
	eh := handlers.NewExportHandler(db)
	mux.HandleFunc("GET /api/export/clients", eh.Clients)
	mux.HandleFunc("GET /api/export/jobs", eh.Jobs)

	// Dashboard page
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if err := view.Render(w, r, "index.html", nil); err != nil {
			httpx.Error(w, http.StatusInternalServerError, "failed to render page")
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).Error("recovered from panic")
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"sentipulse/internal/config"
	apierrors "sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// DashboardHandler handles dashboard data requests
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/trades", h.GetTrades)
	r.Get("/regimes", h.GetRegimes)
	r.Post("/reload", h.Reload)

	return r
}

// GetSummary handles GET /summary?regimes=Fear,Greed. An empty result is a
// valid response ("no data"), not an error.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	regimes, err := parseRegimes(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Summaries(r.Context(), regimes)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"summaries": rows,
		"count":     len(rows),
	})
}

// GetKPIs handles GET /kpis?regimes=Fear,Greed
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	regimes, err := parseRegimes(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	kpis, err := h.service.KPIs(r.Context(), regimes)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, kpis)
}

// GetTrades handles GET /trades?date=2023-05-01 (date optional)
func (h *DashboardHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse(config.DateKeyFormat, date); err != nil {
			h.errorHandler.HandleError(w, r,
				apierrors.NewValidationError(fmt.Sprintf("invalid date %q, expected %s", date, config.DateKeyFormat)))
			return
		}
	}

	trades, err := h.service.TradesForDate(r.Context(), date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

// GetRegimes handles GET /regimes, returning per-regime day counts
func (h *DashboardHandler) GetRegimes(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.RegimeBreakdown(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"regimes": counts,
	})
}

// Reload handles POST /reload: explicit cache invalidation plus a fresh load
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reloaded",
		slog.Int("joined_days", len(dataset.Summaries)),
		slog.Int("trades", len(dataset.Trades)))

	render.JSON(w, r, map[string]interface{}{
		"status":      "reloaded",
		"joined_days": len(dataset.Summaries),
		"trades":      len(dataset.Trades),
		"loaded_at":   dataset.LoadedAt,
	})
}

// parseRegimes reads the optional comma-separated regimes query parameter.
// Absent means no filter; any unknown regime fails validation.
func parseRegimes(r *http.Request) ([]domain.Regime, error) {
	raw := r.URL.Query().Get("regimes")
	if raw == "" {
		return nil, nil
	}

	var regimes []domain.Regime
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		matched := false
		for _, known := range domain.AllRegimes() {
			if strings.EqualFold(part, string(known)) {
				regimes = append(regimes, known)
				matched = true
				break
			}
		}
		if !matched {
			return nil, apierrors.NewValidationError(
				fmt.Sprintf("invalid regime %q, expected one of Fear, Neutral, Greed", part))
		}
	}
	return regimes, nil
}

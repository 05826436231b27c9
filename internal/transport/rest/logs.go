package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/service/logbook"
)

type logService interface {
	CreateEntry(ctx context.Context, tenantID string, in logbook.CreateEntryInput) (domain.LogEntry, error)
	GetEntriesForDate(ctx context.Context, tenantID string, date time.Time) ([]domain.LogEntry, error)
	GetEntry(ctx context.Context, tenantID string, id uuid.UUID) (domain.LogEntry, error)
	UpdateEntry(ctx context.Context, tenantID string, id uuid.UUID, upd domain.LogEntryUpdate) (domain.LogEntry, error)
	DeleteEntry(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)
	SummarizeNutrition(ctx context.Context, tenantID string, date time.Time) (domain.DailyNutritionSummary, error)
	SummarizeHydration(ctx context.Context, tenantID string, date time.Time) (domain.DailyHydrationSummary, error)
	NutritionRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.DailyNutritionSummary, error)
	HydrationRange(ctx context.Context, tenantID string, start, end time.Time) ([]domain.DailyHydrationSummary, error)
	Today() time.Time
}

// LogHandler serves log entries and daily summaries.
type LogHandler struct {
	svc logService
	log *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(svc logService, logger *slog.Logger) *LogHandler {
	return &LogHandler{svc: svc, log: logger.With("handler", "logs")}
}

// Create handles POST /api/v1/logs.
func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	var req createEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var logDate *time.Time
	if req.LogDate != nil {
		d, err := domain.ParseDate(*req.LogDate)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("log_date", "must be YYYY-MM-DD"))
			return
		}
		logDate = &d
	}

	e, err := h.svc.CreateEntry(r.Context(), tenantID, logbook.CreateEntryInput{
		Source:    domain.Source(req.Source),
		ProductID: req.ProductID,
		QuantityG: req.QuantityG,
		LogDate:   logDate,
		Note:      req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

// Daily handles GET /api/v1/logs/daily?date=.
func (h *LogHandler) Daily(w http.ResponseWriter, r *http.Request) {
	tenantID, date, ok := h.tenantAndDate(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.GetEntriesForDate(r.Context(), tenantID, date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryList(entries))
}

// DailyNutrition handles GET /api/v1/logs/daily/nutrition?date=.
func (h *LogHandler) DailyNutrition(w http.ResponseWriter, r *http.Request) {
	tenantID, date, ok := h.tenantAndDate(w, r)
	if !ok {
		return
	}
	s, err := h.svc.SummarizeNutrition(r.Context(), tenantID, date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNutritionSummary(s))
}

// DailyHydration handles GET /api/v1/logs/daily/hydration?date=.
func (h *LogHandler) DailyHydration(w http.ResponseWriter, r *http.Request) {
	tenantID, date, ok := h.tenantAndDate(w, r)
	if !ok {
		return
	}
	s, err := h.svc.SummarizeHydration(r.Context(), tenantID, date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHydrationSummary(s))
}

// RangeNutrition handles GET /api/v1/logs/range/nutrition?from=&to=.
func (h *LogHandler) RangeNutrition(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	from, to, err := queryRange(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	days, err := h.svc.NutritionRange(r.Context(), tenantID, from, to)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]nutritionSummaryResponse, 0, len(days))
	for _, d := range days {
		out = append(out, toNutritionSummary(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// RangeHydration handles GET /api/v1/logs/range/hydration?from=&to=.
func (h *LogHandler) RangeHydration(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	from, to, err := queryRange(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	days, err := h.svc.HydrationRange(r.Context(), tenantID, from, to)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]hydrationSummaryResponse, 0, len(days))
	for _, d := range days {
		out = append(out, toHydrationSummary(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/logs/{id}.
func (h *LogHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	e, err := h.svc.GetEntry(r.Context(), tenantID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// Update handles PATCH /api/v1/logs/{id}.
func (h *LogHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req updateEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.svc.UpdateEntry(r.Context(), tenantID, id, domain.LogEntryUpdate{
		QuantityG: req.QuantityG,
		Note:      req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// Delete handles DELETE /api/v1/logs/{id}. Unknown IDs answer 404.
func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	deleted, err := h.svc.DeleteEntry(r.Context(), tenantID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "log entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tenantAndDate resolves the tenant and the optional ?date= (default today).
func (h *LogHandler) tenantAndDate(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return "", time.Time{}, false
	}
	date, err := queryDate(r, "date", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return "", time.Time{}, false
	}
	if date == nil {
		return tenantID, h.svc.Today(), true
	}
	return tenantID, *date, true
}

package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type goalsService interface {
	Get(ctx context.Context, tenantID string) (domain.DailyGoals, error)
	Replace(ctx context.Context, tenantID string, g domain.DailyGoals) (domain.DailyGoals, error)
	Patch(ctx context.Context, tenantID string, patch domain.DailyGoals) (domain.DailyGoals, error)
	Progress(ctx context.Context, tenantID string, date time.Time) (domain.DailyGoalsProgress, error)
}

type clock interface {
	Today() time.Time
}

// GoalsHandler serves daily goals and progress against them.
type GoalsHandler struct {
	svc   goalsService
	clock clock
	log   *slog.Logger
}

// NewGoalsHandler creates a GoalsHandler. clock supplies "today" for
// progress requests without a date.
func NewGoalsHandler(svc goalsService, clock clock, logger *slog.Logger) *GoalsHandler {
	return &GoalsHandler{svc: svc, clock: clock, log: logger.With("handler", "goals")}
}

// Get handles GET /api/v1/goals.
func (h *GoalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	g, err := h.svc.Get(r.Context(), tenantID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalsDTO(g))
}

// Replace handles PUT /api/v1/goals. Omitted targets are cleared.
func (h *GoalsHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.svc.Replace)
}

// Patch handles PATCH /api/v1/goals. Omitted targets are kept.
func (h *GoalsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.svc.Patch)
}

func (h *GoalsHandler) write(w http.ResponseWriter, r *http.Request,
	apply func(context.Context, string, domain.DailyGoals) (domain.DailyGoals, error),
) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	var req goalsDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	g, err := apply(r.Context(), tenantID, req.toDomain())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalsDTO(g))
}

// Progress handles GET /api/v1/goals/progress?date=.
func (h *GoalsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	date, err := queryDate(r, "date", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	day := h.clock.Today()
	if date != nil {
		day = *date
	}

	p, err := h.svc.Progress(r.Context(), tenantID, day)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalsProgress(p))
}

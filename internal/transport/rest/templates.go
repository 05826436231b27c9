package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/service/template"
)

type templateService interface {
	Create(ctx context.Context, tenantID string, in template.CreateTemplateInput) (domain.MealTemplate, error)
	List(ctx context.Context, tenantID string) ([]domain.MealTemplate, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)
	LogTemplate(ctx context.Context, tenantID string, id uuid.UUID, date *time.Time) ([]domain.LogEntry, error)
}

// TemplateHandler serves meal templates.
type TemplateHandler struct {
	svc templateService
	log *slog.Logger
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(svc templateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{svc: svc, log: logger.With("handler", "templates")}
}

// List handles GET /api/v1/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), tenantID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]templateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	var req createTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.svc.Create(r.Context(), tenantID, template.CreateTemplateInput{
		Name:  req.Name,
		Items: req.items(),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(t))
}

// Delete handles DELETE /api/v1/templates/{id}.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	deleted, err := h.svc.Delete(r.Context(), tenantID, id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Log handles POST /api/v1/templates/{id}/log?date=.
func (h *TemplateHandler) Log(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	date, err := queryDate(r, "date", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	entries, err := h.svc.LogTemplate(r.Context(), tenantID, id, date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryList(entries))
}

package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
)

type csvExporter interface {
	WriteCSV(ctx context.Context, w io.Writer, tenantID string, start, end time.Time) (int, error)
}

// ExportHandler serves CSV downloads.
type ExportHandler struct {
	svc csvExporter
	log *slog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc csvExporter, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: logger.With("handler", "export")}
}

// CSV handles GET /api/v1/logs/export/csv?from=&to=. The file is rendered
// into memory first so a storage failure still yields a proper error status.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant(w, r)
	if !ok {
		return
	}
	from, to, err := queryRange(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var buf bytes.Buffer
	rows, err := h.svc.WriteCSV(r.Context(), &buf, tenantID, from, to)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	filename := fmt.Sprintf("nutrition_%s_%s.csv", domain.FormatDate(from), domain.FormatDate(to))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("X-Row-Count", strconv.Itoa(rows))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.WarnContext(r.Context(), "write csv response", slog.String("error", err.Error()))
	}
}

package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

type storagePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the /live, /ready and /health endpoints. None of them
// require an API key.
type HealthHandler struct {
	storage storagePinger
	driver  string
	version string
	sources []string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. driver names the log store
// ("memory", "postgres", "sqlite"); sources is the configured lookup order.
func NewHealthHandler(storage storagePinger, driver, version string, sources []string) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		driver:  driver,
		version: version,
		sources: append([]string(nil), sources...),
		now:     time.Now,
	}
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status      string                `json:"status"`
	Version     string                `json:"version,omitempty"`
	LookupOrder []string              `json:"lookup_order,omitempty"`
	Components  map[string]CompStatus `json:"components,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
}

// CompStatus is the state of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 while the log store is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	comp := h.checkStorage(r.Context())
	writeJSON(w, statusCode(comp.Status), HealthResponse{Status: comp.Status, Timestamp: h.now()})
}

// Health reports the storage check with latency, the build version and the
// lookup order. External food providers are not checked: an outage there
// degrades lookups but never the log store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	comp := h.checkStorage(r.Context())
	writeJSON(w, statusCode(comp.Status), HealthResponse{
		Status:      comp.Status,
		Version:     h.version,
		LookupOrder: h.sources,
		Components:  map[string]CompStatus{"storage:" + h.driver: comp},
		Timestamp:   h.now(),
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Error: err.Error()}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func statusCode(status string) int {
	if status == "ok" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

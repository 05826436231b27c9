package rest

import (
	"net/http"

	"github.com/heartmarshall/nutrition-backend/internal/transport/middleware"
)

// Handlers groups every REST handler served by the API.
type Handlers struct {
	Health    *HealthHandler
	Products  *ProductHandler
	Logs      *LogHandler
	Goals     *GoalsHandler
	Templates *TemplateHandler
	Export    *ExportHandler
	Metrics   http.Handler
}

// NewRouter builds the route table. Health endpoints and /metrics stay
// outside api, which wraps every /api/v1 route (auth, rate limiting). Both
// muxes report their matched pattern to middleware.Metrics.
func NewRouter(h Handlers, api middleware.Middleware) http.Handler {
	v1 := http.NewServeMux()

	v1.HandleFunc("GET /api/v1/products/barcode/{barcode}", h.Products.ByBarcode)
	v1.HandleFunc("GET /api/v1/products/search", h.Products.Search)
	v1.HandleFunc("POST /api/v1/products", h.Products.Create)

	v1.HandleFunc("POST /api/v1/logs", h.Logs.Create)
	v1.HandleFunc("GET /api/v1/logs/daily", h.Logs.Daily)
	v1.HandleFunc("GET /api/v1/logs/daily/nutrition", h.Logs.DailyNutrition)
	v1.HandleFunc("GET /api/v1/logs/daily/hydration", h.Logs.DailyHydration)
	v1.HandleFunc("GET /api/v1/logs/range/nutrition", h.Logs.RangeNutrition)
	v1.HandleFunc("GET /api/v1/logs/range/hydration", h.Logs.RangeHydration)
	v1.HandleFunc("GET /api/v1/logs/export/csv", h.Export.CSV)
	v1.HandleFunc("GET /api/v1/logs/{id}", h.Logs.Get)
	v1.HandleFunc("PATCH /api/v1/logs/{id}", h.Logs.Update)
	v1.HandleFunc("DELETE /api/v1/logs/{id}", h.Logs.Delete)

	v1.HandleFunc("GET /api/v1/goals", h.Goals.Get)
	v1.HandleFunc("PUT /api/v1/goals", h.Goals.Replace)
	v1.HandleFunc("PATCH /api/v1/goals", h.Goals.Patch)
	v1.HandleFunc("GET /api/v1/goals/progress", h.Goals.Progress)

	v1.HandleFunc("GET /api/v1/templates", h.Templates.List)
	v1.HandleFunc("POST /api/v1/templates", h.Templates.Create)
	v1.HandleFunc("DELETE /api/v1/templates/{id}", h.Templates.Delete)
	v1.HandleFunc("POST /api/v1/templates/{id}/log", h.Templates.Log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}
	mux.Handle("/api/v1/", api(middleware.Routed(v1)))
	return middleware.Routed(mux)
}

package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/knkgun/gallery/internal/api/handlers"
	"github.com/knkgun/gallery/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(notFound)

	// Operational Endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/info", h.GetInfo).Methods("GET")
	addPreviewRoutes(apiRouter, h)
	addAdminRoutes(apiRouter, h)

	return r
}

// addPreviewRoutes configures the preview and download routes.
func addPreviewRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/preview", h.GetPreview).Methods("GET")
	r.HandleFunc("/download", h.DownloadFile).Methods("GET")
	r.HandleFunc("/thumbnails", h.CreateThumbnails).Methods("POST")
}

// addAdminRoutes configures maintenance routes.
func addAdminRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/housekeeping", h.TriggerHousekeeping).Methods("POST")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Route not found.")
}

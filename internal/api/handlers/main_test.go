// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"image"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/services/mocks"
)

type testDeps struct {
	Preview      *mocks.MockPreviewService
	Housekeeping *mocks.MockHousekeepingService
	Auditor      *mocks.MockAuditor
	Info         *mocks.MockInfoService
}

// setupTestAPI creates a test server with every API route and mocked services.
func setupTestAPI(t *testing.T) (*httptest.Server, *testDeps) {
	t.Helper()

	deps := &testDeps{
		Preview:      new(mocks.MockPreviewService),
		Housekeeping: new(mocks.MockHousekeepingService),
		Auditor:      new(mocks.MockAuditor),
		Info:         new(mocks.MockInfoService),
	}
	deps.Info.On("GetInfo").Return(models.Info{
		ServiceName: "Gallery Preview-API",
		Version:     "test",
		UptimeSince: time.Now(),
	}).Maybe()

	cfg := &config.Config{
		Preview:              config.PreviewConfig{DefaultOwner: "admin"},
	}

	h := NewHandlers(deps.Info, deps.Preview, deps.Housekeeping, deps.Auditor, cfg)

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/api/preview", h.GetPreview).Methods("GET")
	r.HandleFunc("/api/download", h.DownloadFile).Methods("GET")
	r.HandleFunc("/api/thumbnails", h.CreateThumbnails).Methods("POST")
	r.HandleFunc("/api/housekeeping", h.TriggerHousekeeping).Methods("POST")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, deps
}

func bitmap(w, h int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// filepath: internal/api/handlers/housekeeping_handler.go
package handlers

import (
	"net/http"

	"github.com/knkgun/gallery/internal/logging"
)

// @Summary Trigger housekeeping
// @Description Manually purges cached previews older than the configured max age.
// @Tags admin
// @Produce  json
// @Success 200 {object} models.HousekeepingReport
// @Failure 500 {object} ErrorResponse "Housekeeping failed"
// @Router /housekeeping [post]
func (h *Handlers) TriggerHousekeeping(w http.ResponseWriter, r *http.Request) {
	report, err := h.Housekeeping.TriggerHousekeeping(r.Context())
	if err != nil {
		logging.Log.Errorf("Manual housekeeping failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Housekeeping failed.")
		return
	}

	h.Auditor.Log(r.Context(), "housekeeping.trigger", h.ownerFromRequest(r), "preview_cache", map[string]interface{}{
		"deleted": report.PreviewsDeleted,
		"left":    report.PreviewsLeft,
	})

	respondWithJSON(w, http.StatusOK, report)
}

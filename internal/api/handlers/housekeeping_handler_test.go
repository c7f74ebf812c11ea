// filepath: internal/api/handlers/housekeeping_handler_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/knkgun/gallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTriggerHousekeeping(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server, deps := setupTestAPI(t)
		deps.Housekeeping.On("TriggerHousekeeping", mock.Anything).Return(&models.HousekeepingReport{
			PreviewsDeleted: 4,
			PreviewsLeft:    10,
		}, nil).Once()
		deps.Auditor.On("Log", mock.Anything, "housekeeping.trigger", "admin", "preview_cache", mock.Anything).Once()

		resp, err := http.Post(server.URL+"/api/housekeeping", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var report models.HousekeepingReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, int64(4), report.PreviewsDeleted)
		deps.Auditor.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		server, deps := setupTestAPI(t)
		deps.Housekeeping.On("TriggerHousekeeping", mock.Anything).Return(nil, errors.New("database is locked")).Once()

		resp, err := http.Post(server.URL+"/api/housekeeping", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		deps.Auditor.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

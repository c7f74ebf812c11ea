// filepath: internal/api/handlers/utils.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/services"
)

// OwnerHeader names the gallery whose files are requested.
const OwnerHeader = "X-Gallery-Owner"

// ownerFromRequest picks the owner from the header, the owner query parameter or the
// configured default, in that order.
func (h *Handlers) ownerFromRequest(r *http.Request) string {
	if owner := strings.TrimSpace(r.Header.Get(OwnerHeader)); owner != "" {
		return owner
	}
	if owner := strings.TrimSpace(r.URL.Query().Get("owner")); owner != "" {
		return owner
	}
	if h.Cfg != nil {
		return h.Cfg.Preview.DefaultOwner
	}
	return ""
}

// wantsJSON reports whether the client negotiated the base64 JSON form.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// parseIntParam parses an optional non-negative integer query parameter.
func parseIntParam(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

// parseBoolParam parses an optional boolean query parameter.
func parseBoolParam(r *http.Request, name string, def bool) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

// respondWithServiceError maps a service error onto a JSON error response.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	code := services.StatusCode(err)
	if code != http.StatusInternalServerError {
		respondWithError(w, code, services.ErrorMessage(err))
		return
	}
	logging.Log.Errorf("%s: %v", fallback, err)
	respondWithError(w, code, fallback)
}

// serveResult writes a preview result in binary form.
func serveResult(w http.ResponseWriter, res *preview.Result, attachment bool) {
	data, err := res.Binary()
	if err != nil {
		logging.Log.Errorf("serveResult: could not encode %s: %v", res.Path, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to encode preview.")
		return
	}

	w.Header().Set("Content-Type", res.MediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", baseName(res.Path)))
	}
	w.WriteHeader(services.ResultStatusCode(res.Status))
	if _, err := w.Write(data); err != nil {
		logging.Log.Debugf("serveResult: client went away: %v", err)
	}
}

// serveResultAsJSON sends a text-encoded result as a JSON object.
// This is used by clients that cannot handle binary streams (e.g. the gallery web view).
func serveResultAsJSON(w http.ResponseWriter, res *preview.Result) {
	respondWithJSON(w, services.ResultStatusCode(res.Status), services.ToPayload(res))
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

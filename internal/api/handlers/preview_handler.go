// filepath: internal/api/handlers/preview_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/preview"
)

// maxThumbnailBatch bounds the number of files in one thumbnails request.
const maxThumbnailBatch = 500

// @Summary Get a file preview
// @Description Returns a preview of a gallery file bounded by width x height. Animated GIFs and SVGs that cannot be rendered are returned as they are. Files without a preview get a media type icon and status 415. Supports Content Negotiation via Accept header.
// @Tags preview
// @Produce png
// @Produce json
// @Param   file         query   string  true   "File path relative to the owner's gallery"
// @Param   width        query   int     false  "Maximum width (0 = unbounded)"
// @Param   height       query   int     false  "Maximum height (0 = unbounded)"
// @Param   keep_aspect  query   bool    false  "Keep the aspect ratio (default true)"
// @Param   animated     query   bool    false  "Serve animated GIFs as they are (default true)"
// @Param   owner        query   string  false  "Gallery owner (or X-Gallery-Owner header)"
// @Success 200 {file} file "The preview or original file (default)"
// @Success 200 {object} models.PreviewPayload "Base64 encoded payload (if Accept: application/json)"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 413 {object} ErrorResponse "Animated GIF or SVG exceeds the download limit"
// @Failure 415 {file} file "Media type icon"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /preview [get]
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("file")
	if path == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: file")
		return
	}

	req, err := previewRequestFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	req = req.WithEncodeAsText(wantsJSON(r))

	res, err := h.Preview.GetPreview(r.Context(), h.ownerFromRequest(r), path, req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to get preview.")
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if res.Encoded {
		serveResultAsJSON(w, res)
		return
	}
	serveResult(w, res, false)
}

func previewRequestFromQuery(r *http.Request) (preview.Request, error) {
	width, err := parseIntParam(r, "width")
	if err != nil {
		return preview.Request{}, err
	}
	height, err := parseIntParam(r, "height")
	if err != nil {
		return preview.Request{}, err
	}
	keepAspect, err := parseBoolParam(r, "keep_aspect", true)
	if err != nil {
		return preview.Request{}, err
	}
	animated, err := parseBoolParam(r, "animated", true)
	if err != nil {
		return preview.Request{}, err
	}

	req, err := preview.NewRequest(width, height)
	if err != nil {
		return preview.Request{}, err
	}
	return req.WithKeepAspect(keepAspect).WithAnimatedPreview(animated), nil
}

// @Summary Download a file
// @Description Returns the original bytes of a gallery file as an attachment. Supports Content Negotiation via Accept header.
// @Tags preview
// @Produce octet-stream
// @Produce json
// @Param   file   query   string  true   "File path relative to the owner's gallery"
// @Param   owner  query   string  false  "Gallery owner (or X-Gallery-Owner header)"
// @Success 200 {file} file "The original file (default)"
// @Success 200 {object} models.PreviewPayload "Base64 encoded file (if Accept: application/json)"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 413 {object} ErrorResponse "File exceeds the download limit"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /download [get]
func (h *Handlers) DownloadFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("file")
	if path == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: file")
		return
	}

	owner := h.ownerFromRequest(r)
	req := preview.DownloadRequest().WithEncodeAsText(wantsJSON(r))

	res, err := h.Preview.GetPreview(r.Context(), owner, path, req)
	if err != nil {
		respondWithServiceError(w, err, "Failed to download file.")
		return
	}

	h.Auditor.Log(r.Context(), "file.download", owner, res.Path, map[string]interface{}{
		"mimetype": res.MediaType,
		"size":     len(res.Bytes),
	})

	if res.Encoded {
		serveResultAsJSON(w, res)
		return
	}
	serveResult(w, res, true)
}

// @Summary Create thumbnails
// @Description Returns base64 encoded thumbnails for a batch of files. Animated GIFs are rendered from their first frame. A failing file is reported inline with its own status and does not fail the batch.
// @Tags preview
// @Accept  json
// @Produce json
// @Param   request  body  models.ThumbnailsRequest  true  "Files and thumbnail box"
// @Success 200 {array} models.PreviewPayload
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Router /thumbnails [post]
func (h *Handlers) CreateThumbnails(w http.ResponseWriter, r *http.Request) {
	var body models.ThumbnailsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if len(body.Files) == 0 {
		respondWithError(w, http.StatusBadRequest, "No files requested.")
		return
	}
	if len(body.Files) > maxThumbnailBatch {
		respondWithError(w, http.StatusBadRequest, "Too many files requested.")
		return
	}

	keepAspect := true
	if body.KeepAspect != nil {
		keepAspect = *body.KeepAspect
	}
	req, err := preview.ThumbnailRequest(body.Width, body.Height, keepAspect)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	owner := h.ownerFromRequest(r)
	payloads := h.Preview.GetThumbnails(r.Context(), owner, body.Files, req)

	h.Auditor.Log(r.Context(), "thumbnails.batch", owner, "", map[string]interface{}{
		"count":  len(body.Files),
		"width":  body.Width,
		"height": body.Height,
	})

	respondWithJSON(w, http.StatusOK, payloads)
}

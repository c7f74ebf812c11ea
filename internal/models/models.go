// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"time"
)

// Info represents general information about the service.
type Info struct {
	ServiceName          string    `json:"service_name"`
	Version              string    `json:"version"`
	UptimeSince          time.Time `json:"uptime_since"`
	SVGPreviewsAvailable bool      `json:"svg_previews"`
	CacheBackend         string    `json:"cache_backend"`
	SquareThumbnailWidth int       `json:"square_thumbnail_width"`
}

// CacheStats describes the persistent preview cache.
type CacheStats struct {
	PreviewCount int64 `json:"preview_count"`
	TotalBytes   int64 `json:"total_bytes"`
}

// HousekeepingReport details the results of a housekeeping run.
type HousekeepingReport struct {
	PreviewsDeleted int64     `json:"previews_deleted"`
	PreviewsLeft    int64     `json:"previews_left"`
	Cutoff          time.Time `json:"cutoff"`
	Duration        string    `json:"duration"`
}

// PreviewPayload is the JSON form of a preview result. Data holds the base64 encoded content.
type PreviewPayload struct {
	Path      string `json:"path"`
	MediaType string `json:"mimetype"`
	Status    int    `json:"status"`
	Data      string `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ThumbnailsRequest is used for the POST /api/thumbnails request.
type ThumbnailsRequest struct {
	Files      []string `json:"files"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	KeepAspect *bool    `json:"keep_aspect,omitempty"`
}

// Package responses defines API response types used by the docsite HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Uptime     float64   `json:"uptime"`
	ManifestID string    `json:"manifest_id,omitempty"`
	Documents  int       `json:"documents"`
	AliasKeys  int       `json:"alias_keys"`
}

// DocumentResponse is a resolved document with its link and alias keys.
type DocumentResponse struct {
	Document *manifest.Document `json:"document"`
	Href     string             `json:"href"`
	Keys     []string           `json:"keys"`
}

// Package api provides the HTTP handlers for the storefront backend.
package api

// Version is the service version reported by /api/status. Overridden at
// build time via -ldflags.
var Version = "dev"

// StatusResponse is the response from the /api/status endpoint.
type StatusResponse struct {
	Version string `json:"version"`
	DB      bool   `json:"db"`
}

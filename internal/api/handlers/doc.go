// Package handlers implements HTTP handlers for the osrs-price-tracker API.
// Probe endpoints are plain Echo handlers; the JSON API is registered on a
// huma.API per resource with the Register*Routes functions.
package handlers

// StatusResponse is the body of the probe endpoints.
type StatusResponse struct {
	Status  string `json:"status"            example:"ok"`
	Version string `json:"version,omitempty" example:"v1.2.0"`
	Error   string `json:"error,omitempty"`
}

package bridge

import "time"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Listeners int       `json:"listeners"` // Connected toast websocket clients
	Timestamp time.Time `json:"timestamp"`
}

// PingResponse is returned by GET /api/v1/ping on success
type PingResponse struct {
	Connected bool   `json:"connected"`
	Target    string `json:"target"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error      string `json:"error"`   // Error kind, e.g. "NetworkUnavailable"
	Message    string `json:"message"` // Same text the toast showed
	StatusCode int    `json:"status_code,omitempty"`
}

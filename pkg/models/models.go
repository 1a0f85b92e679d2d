package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Design is a named set of independent parameter values (for internal use
// and storage). Derived values are never persisted; they are recomputed
// when the design is applied.
type Design struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Values      map[string]float64 `json:"values"`
	Precisions  map[string]int     `json:"precisions"`
	CreatedAt   time.Time          `json:"created_at"`
}

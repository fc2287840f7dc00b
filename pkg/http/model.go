package http

import "time"

// APIResponse represents the standard API envelope.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents one validation failure detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"max"`
	Message string                 `json:"message,omitempty" example:"max is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// DatasetResponse is the tabular run output: one row per security, in
// universe order, with the run timestamp.
type DatasetResponse struct {
	Rows  interface{} `json:"rows"`
	Total int         `json:"total"`
	AsOf  time.Time   `json:"as_of"`
}

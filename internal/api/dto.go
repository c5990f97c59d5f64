package api

import "github.com/samcharles93/slate/internal/strategy"

// PlanResponse is returned by POST /v1/plan. Config is present only when a
// fitting configuration was found.
type PlanResponse struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Caps   string `json:"caps"`
	Fits   bool   `json:"fits"`

	Config *strategy.TensorConfig `json:"config,omitempty"`
}

// ErrorResponse is the error envelope for all API failures.
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func newErrorResponse(errType, msg string) ErrorResponse {
	var e ErrorResponse
	e.Error.Type = errType
	e.Error.Message = msg
	return e
}

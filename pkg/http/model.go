package http

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"signal_names"`
	Message string                 `json:"message,omitempty" example:"signal_names is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

package models

// ErrorResponse is the body of every 401, 409, 429 and 5xx answer.
type ErrorResponse struct {
	Error string `json:"error" example:"email already exists"`
}

// ValidationErrorResponse lists every field violation of a rejected payload.
type ValidationErrorResponse struct {
	Errors []string `json:"errors" example:"\"name\" is required"`
}

package dto

// ErrorResponse is the uniform error body for every rejected request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package dto

// SuccessResponse represents a standard acknowledgment from the backend
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

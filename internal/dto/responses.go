package dto

import "github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type RatingResponse struct {
	ProviderID uint    `json:"provider_id"`
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
}

type ProviderContactsResponse struct {
	ProviderID uint                `json:"provider_id"`
	Count      int                 `json:"count"`
	Contacts   []models.ContactLog `json:"contacts"`
}

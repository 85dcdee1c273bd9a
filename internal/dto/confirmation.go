package dto

import "storefront/internal/domain"

// ConfirmationResponse is returned by the debug endpoint that exposes a user's
// most recent confirmation record.
type ConfirmationResponse struct {
	CurrentTime  int64                `json:"current_time"`
	Confirmation *domain.Confirmation `json:"confirmation"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

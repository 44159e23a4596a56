package models

import (
	"time"

	"github.com/google/uuid"
)

// ValidateAddressRequest is the body of POST /validate-address.
type ValidateAddressRequest struct {
	Address string `json:"address" binding:"required" example:"1600 Amphitheatre Pkwy, Mountain View, CA"`
}

// ValidateAddressResponse is the JSON returned for a validation. Exactly one of
// ExactMatch, PossibleMatches and Message is set, according to Status.
type ValidateAddressResponse struct {
	OriginalInput   string           `json:"original_input"`
	Status          Status           `json:"status"`
	ExactMatch      *Exact           `json:"exactMatch,omitempty"`
	PossibleMatches []string         `json:"possibleMatches,omitempty"`
	Message         string           `json:"message,omitempty"`
	Metadata        ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a validation was produced.
type ResponseMetadata struct {
	RequestID        string    `json:"requestId"`
	Provider         string    `json:"provider"`
	Cached           bool      `json:"cached"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Timestamp        time.Time `json:"timestamp"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResult is what the service hands back to its callers.
type ValidationResult struct {
	Input          string
	Outcome        Outcome
	Provider       string
	Cached         bool
	ProcessingTime time.Duration
}

// ValidationRecord is a stored validation, one row of the history table.
type ValidationRecord struct {
	ID               int64     `json:"id"`
	RequestID        uuid.UUID `json:"requestId"`
	Input            string    `json:"input"`
	Status           Status    `json:"status"`
	FormattedAddress string    `json:"formattedAddress,omitempty"`
	Alternatives     []string  `json:"alternatives,omitempty"`
	Message          string    `json:"message,omitempty"`
	Provider         string    `json:"provider"`
	Cached           bool      `json:"cached"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewValidationRecord flattens a result into a history record.
func NewValidationRecord(requestID uuid.UUID, result *ValidationResult) ValidationRecord {
	record := ValidationRecord{
		RequestID: requestID,
		Input:     result.Input,
		Status:    result.Outcome.Status(),
		Provider:  result.Provider,
		Cached:    result.Cached,
	}

	switch o := result.Outcome.(type) {
	case Exact:
		record.FormattedAddress = o.FormattedAddress
	case Corrected:
		record.Alternatives = o.Alternatives
	case Unverifiable:
		record.Message = o.Message
	}

	return record
}

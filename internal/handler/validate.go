package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"address-validator/internal/models"
	"address-validator/internal/provider"
	"address-validator/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ValidationHandler handles address validation requests
type ValidationHandler struct {
	validator AddressValidator
	history   ValidationHistory
}

// AddressValidator interface for dependency injection
type AddressValidator interface {
	Validate(ctx context.Context, address string) (*models.ValidationResult, error)
}

// ValidationHistory records and lists past validations
type ValidationHistory interface {
	Record(ctx context.Context, requestID uuid.UUID, result *models.ValidationResult) error
	Recent(ctx context.Context, limit int) ([]models.ValidationRecord, error)
}

// NewValidationHandler creates a new validation handler. history may be nil.
func NewValidationHandler(validator AddressValidator, history ValidationHistory) *ValidationHandler {
	return &ValidationHandler{validator: validator, history: history}
}

// ValidateAddress handles POST /validate-address requests
//
//	@Summary	Validate a US postal address
//	@Tags		validation
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.ValidateAddressRequest	true	"Address to validate"
//	@Success	200		{object}	models.ValidateAddressResponse
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	429		{object}	models.ErrorResponse
//	@Failure	502		{object}	models.ErrorResponse
//	@Failure	503		{object}	models.ErrorResponse
//	@Router		/validate-address [post]
func (h *ValidationHandler) ValidateAddress(c *gin.Context) {
	var req models.ValidateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "request body must be JSON with a non-empty 'address' field"})
		return
	}

	result, err := h.validator.Validate(c.Request.Context(), req.Address)
	if err != nil {
		status, message := errorResponse(err)
		c.JSON(status, models.ErrorResponse{Error: message})
		return
	}

	requestID := RequestID(c)
	if h.history != nil {
		if err := h.history.Record(c.Request.Context(), requestID, result); err != nil {
			log.Warn().Err(err).Str("request_id", requestID.String()).Msg("failed to record validation")
		}
	}

	c.JSON(http.StatusOK, newValidateAddressResponse(req.Address, requestID, result))
}

// RecentValidations handles GET /validations requests
//
//	@Summary	List recent validations
//	@Tags		validation
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of records (default 20, max 100)"
//	@Success	200		{array}		models.ValidationRecord
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	503		{object}	models.ErrorResponse
//	@Router		/validations [get]
func (h *ValidationHandler) RecentValidations(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "validation history is disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list validations")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func newValidateAddressResponse(input string, requestID uuid.UUID, result *models.ValidationResult) models.ValidateAddressResponse {
	resp := models.ValidateAddressResponse{
		OriginalInput: input,
		Status:        result.Outcome.Status(),
		Metadata: models.ResponseMetadata{
			RequestID:        requestID.String(),
			Provider:         result.Provider,
			Cached:           result.Cached,
			ProcessingTimeMs: result.ProcessingTime.Milliseconds(),
			Timestamp:        time.Now().UTC(),
		},
	}

	switch o := result.Outcome.(type) {
	case models.Exact:
		resp.ExactMatch = &o
	case models.Corrected:
		resp.PossibleMatches = o.Alternatives
	case models.Unverifiable:
		resp.Message = o.Message
	}

	return resp
}

// errorResponse maps a validation error to an HTTP status and a client-safe message.
func errorResponse(err error) (int, string) {
	if errors.Is(err, service.ErrInvalidAddress) {
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), "service: ")
	}

	if kind, ok := provider.KindOf(err); ok {
		switch kind {
		case provider.ErrorKindInvalidRequest:
			return http.StatusBadRequest, "the geocoding provider rejected the request"
		case provider.ErrorKindQuotaExceeded:
			return http.StatusTooManyRequests, "geocoding quota exceeded, try again later"
		case provider.ErrorKindAccessDenied:
			return http.StatusBadGateway, "access to the geocoding provider was denied"
		case provider.ErrorKindTransient:
			return http.StatusServiceUnavailable, "geocoding provider is temporarily unavailable"
		case provider.ErrorKindUnknownUpstream:
			return http.StatusBadGateway, "unexpected response from the geocoding provider"
		}
	}

	return http.StatusInternalServerError, "internal server error"
}

package service

import (
	"context"
	"fmt"
	"time"

	"address-validator/internal/models"
	"address-validator/internal/validation"

	"github.com/rs/zerolog/log"
)

// AddressValidationService contains the core business logic for validating addresses
type AddressValidationService struct {
	geocoder   Geocoder
	classifier Classifier
	cache      OutcomeCache
	maxLength  int
}

// Geocoder interface for dependency injection
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, address string) ([]models.Candidate, error)
}

// Classifier turns provider candidates into an outcome
type Classifier interface {
	Classify(candidates []models.Candidate, input string) models.Outcome
}

// OutcomeCache stores outcomes by normalized address
type OutcomeCache interface {
	Get(key string) (models.Outcome, bool)
	Set(key string, outcome models.Outcome)
}

// NewAddressValidationService creates a new address validation service. cache may be nil.
func NewAddressValidationService(geocoder Geocoder, classifier Classifier, cache OutcomeCache, maxLength int) *AddressValidationService {
	return &AddressValidationService{
		geocoder:   geocoder,
		classifier: classifier,
		cache:      cache,
		maxLength:  maxLength,
	}
}

// Validate sanitizes address, geocodes it and classifies the provider's answer
func (s *AddressValidationService) Validate(ctx context.Context, address string) (*models.ValidationResult, error) {
	start := time.Now()

	input, err := SanitizeAddress(address, s.maxLength)
	if err != nil {
		return nil, err
	}

	key := validation.Normalize(input)
	if s.cache != nil {
		if outcome, ok := s.cache.Get(key); ok {
			log.Debug().Str("key", key).Msg("outcome cache hit")
			return &models.ValidationResult{
				Input:          input,
				Outcome:        outcome,
				Provider:       s.geocoder.Name(),
				Cached:         true,
				ProcessingTime: time.Since(start),
			}, nil
		}
	}

	candidates, err := s.geocoder.Geocode(ctx, input)
	if err != nil {
		log.Warn().Err(err).Str("provider", s.geocoder.Name()).Msg("geocoding failed")
		return nil, fmt.Errorf("service: failed to geocode address: %w", err)
	}

	outcome := s.classifier.Classify(candidates, input)
	if s.cache != nil {
		s.cache.Set(key, outcome)
	}

	log.Debug().
		Int("candidates", len(candidates)).
		Str("status", string(outcome.Status())).
		Msg("address classified")

	return &models.ValidationResult{
		Input:          input,
		Outcome:        outcome,
		Provider:       s.geocoder.Name(),
		ProcessingTime: time.Since(start),
	}, nil
}

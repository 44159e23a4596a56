package service

import (
	"context"
	"fmt"

	"address-validator/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryService records validations and reads them back
type HistoryService struct {
	repo HistoryRepository
}

// HistoryRepository interface for dependency injection
type HistoryRepository interface {
	SaveValidation(ctx context.Context, record models.ValidationRecord) (int64, error)
	RecentValidations(ctx context.Context, limit int) ([]models.ValidationRecord, error)
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record stores the result of one validation
func (s *HistoryService) Record(ctx context.Context, requestID uuid.UUID, result *models.ValidationResult) error {
	if result == nil || result.Outcome == nil {
		return fmt.Errorf("service: nothing to record")
	}

	if _, err := s.repo.SaveValidation(ctx, models.NewValidationRecord(requestID, result)); err != nil {
		return fmt.Errorf("service: failed to save validation: %w", err)
	}
	return nil
}

// Recent returns the latest validations, newest first. limit is clamped to
// [1, MaxHistoryLimit]; zero or less means DefaultHistoryLimit.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.ValidationRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	records, err := s.repo.RecentValidations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list validations: %w", err)
	}
	return records, nil
}

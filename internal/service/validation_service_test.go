package service

import (
	"context"
	"testing"
	"time"

	"address-validator/internal/cache"
	"address-validator/internal/models"
	"address-validator/internal/provider"
	"address-validator/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGeocoder is a mock implementation of the Geocoder interface
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Name() string {
	return "mock"
}

// Geocode implements Geocoder.
func (m *MockGeocoder) Geocode(ctx context.Context, address string) ([]models.Candidate, error) {
	args := m.Called(ctx, address)
	candidates, _ := args.Get(0).([]models.Candidate)
	return candidates, args.Error(1)
}

var googleplex = models.Candidate{
	FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
	LocationType:     models.LocationTypeRooftop,
	Components: []models.AddressComponent{
		{LongName: "1600", ShortName: "1600", Types: []string{"street_number"}},
		{LongName: "Amphitheatre Parkway", ShortName: "Amphitheatre Pkwy", Types: []string{"route"}},
		{LongName: "Mountain View", ShortName: "Mountain View", Types: []string{"locality", "political"}},
		{LongName: "California", ShortName: "CA", Types: []string{"administrative_area_level_1", "political"}},
		{LongName: "94043", ShortName: "94043", Types: []string{"postal_code"}},
	},
}

func TestAddressValidationService_Validate(t *testing.T) {
	tests := []struct {
		name           string
		address        string
		geocodeInput   string
		mockCandidates []models.Candidate
		mockError      error
		expected       models.Outcome
		expectError    error
	}{
		{
			name:        "empty address",
			address:     "   ",
			expectError: ErrInvalidAddress,
		},
		{
			name:           "exact match",
			address:        " 1600 Amphitheatre Pkwy,  Mountain View, CA ",
			geocodeInput:   "1600 Amphitheatre Pkwy, Mountain View, CA",
			mockCandidates: []models.Candidate{googleplex},
			expected: models.Exact{
				FormattedAddress: googleplex.FormattedAddress,
				Components: models.ExtractedComponents{
					StreetNumber: "1600",
					StreetName:   "Amphitheatre Parkway",
					City:         "Mountain View",
					State:        "CA",
					PostalCode:   "94043",
				},
			},
		},
		{
			name:           "no results",
			address:        "qwertyuiop",
			geocodeInput:   "qwertyuiop",
			mockCandidates: []models.Candidate{},
			expected:       models.Unverifiable{Message: validation.MessageNoAddressFound},
		},
		{
			name:         "provider error",
			address:      "123 Main St",
			geocodeInput: "123 Main St",
			mockError:    &provider.Error{Kind: provider.ErrorKindQuotaExceeded, Message: "quota exceeded"},
			expectError:  &provider.Error{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockGeocoder := new(MockGeocoder)
			svc := NewAddressValidationService(mockGeocoder, validation.NewClassifier(validation.DefaultSimilarityThreshold), nil, 200)

			if tt.geocodeInput != "" {
				mockGeocoder.On("Geocode", mock.Anything, tt.geocodeInput).Return(tt.mockCandidates, tt.mockError)
			}

			// Execute
			result, err := svc.Validate(context.Background(), tt.address)

			// Assert
			switch want := tt.expectError.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result.Outcome)
				assert.Equal(t, tt.geocodeInput, result.Input)
				assert.Equal(t, "mock", result.Provider)
				assert.False(t, result.Cached)
			case *provider.Error:
				require.Error(t, err)
				assert.ErrorAs(t, err, &want)
				kind, ok := provider.KindOf(err)
				assert.True(t, ok)
				assert.Equal(t, provider.ErrorKindQuotaExceeded, kind)
			default:
				assert.ErrorIs(t, err, tt.expectError)
			}

			mockGeocoder.AssertExpectations(t)
		})
	}
}

func TestAddressValidationService_ValidateUsesCache(t *testing.T) {
	mockGeocoder := new(MockGeocoder)
	mockGeocoder.On("Geocode", mock.Anything, "1600 Amphitheatre Pkwy Mountain View CA").
		Return([]models.Candidate{googleplex}, nil).Once()

	svc := NewAddressValidationService(
		mockGeocoder,
		validation.NewClassifier(validation.DefaultSimilarityThreshold),
		cache.NewOutcomeCache(time.Minute, time.Minute),
		200,
	)

	first, err := svc.Validate(context.Background(), "1600 Amphitheatre Pkwy Mountain View CA")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// Same address once normalized.
	second, err := svc.Validate(context.Background(), "1600 amphitheatre pkwy., mountain view, ca")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, "1600 amphitheatre pkwy., mountain view, ca", second.Input)

	mockGeocoder.AssertExpectations(t)
	mockGeocoder.AssertNumberOfCalls(t, "Geocode", 1)
}

func TestAddressValidationService_ValidateDoesNotCacheErrors(t *testing.T) {
	mockGeocoder := new(MockGeocoder)
	mockGeocoder.On("Geocode", mock.Anything, "123 Main St").
		Return(nil, &provider.Error{Kind: provider.ErrorKindTransient, Message: "provider error"}).Once()
	mockGeocoder.On("Geocode", mock.Anything, "123 Main St").
		Return([]models.Candidate{}, nil).Once()

	svc := NewAddressValidationService(
		mockGeocoder,
		validation.NewClassifier(validation.DefaultSimilarityThreshold),
		cache.NewOutcomeCache(time.Minute, time.Minute),
		200,
	)

	_, err := svc.Validate(context.Background(), "123 Main St")
	require.Error(t, err)

	result, err := svc.Validate(context.Background(), "123 Main St")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnverifiable, result.Outcome.Status())

	mockGeocoder.AssertExpectations(t)
}

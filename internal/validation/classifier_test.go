package validation

import (
	"sync"
	"testing"

	"address-validator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streetComponents(route, city string) []models.AddressComponent {
	return []models.AddressComponent{
		component(route, route, "route"),
		component(city, city, "locality", "political"),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []models.Candidate
		expected   models.Outcome
	}{
		{
			name:       "no candidates",
			input:      "anything",
			candidates: nil,
			expected:   models.Unverifiable{Message: "No address found."},
		},
		{
			name:  "rooftop match close to the input",
			input: "1600 amphitheatre pkwy mountain view ca",
			candidates: []models.Candidate{
				{
					FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
					LocationType:     models.LocationTypeRooftop,
					Components: []models.AddressComponent{
						component("1600", "1600", "street_number"),
						component("Amphitheatre Pkwy", "Amphitheatre Pkwy", "route"),
						component("Mountain View", "Mountain View", "locality"),
						component("California", "CA", "administrative_area_level_1"),
						component("94043", "94043", "postal_code"),
					},
				},
			},
			expected: models.Exact{
				FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
				Components: models.ExtractedComponents{
					StreetNumber: "1600",
					StreetName:   "Amphitheatre Pkwy",
					City:         "Mountain View",
					State:        "CA",
					PostalCode:   "94043",
				},
			},
		},
		{
			name:  "country fallback is discarded",
			input: "asdfghjkl",
			candidates: []models.Candidate{
				{
					FormattedAddress: "United States",
					PartialMatch:     true,
					LocationType:     models.LocationTypeApproximate,
					Types:            []string{"country", "political"},
					Components:       []models.AddressComponent{component("United States", "US", "country", "political")},
				},
			},
			expected: models.Unverifiable{Message: "No precise US match found."},
		},
		{
			name:  "partial match without street or city detail is discarded",
			input: "zzz, CA",
			candidates: []models.Candidate{
				{
					FormattedAddress: "California, USA",
					PartialMatch:     true,
					LocationType:     models.LocationTypeApproximate,
					Types:            []string{"administrative_area_level_1", "political"},
					Components:       []models.AddressComponent{component("California", "CA", "administrative_area_level_1")},
				},
			},
			expected: models.Unverifiable{Message: "No precise US match found."},
		},
		{
			name:  "approximate partial matches become alternatives in order",
			input: "123 Main St Springfield",
			candidates: []models.Candidate{
				{
					FormattedAddress: "123 Main St, Springfield, IL",
					PartialMatch:     true,
					LocationType:     models.LocationTypeApproximate,
					Components:       streetComponents("Main St", "Springfield"),
				},
				{
					FormattedAddress: "123 Main St, Springfield, MO",
					PartialMatch:     true,
					LocationType:     models.LocationTypeApproximate,
					Components:       streetComponents("Main St", "Springfield"),
				},
			},
			expected: models.Corrected{Alternatives: []string{"123 Main St, Springfield, IL", "123 Main St, Springfield, MO"}},
		},
		{
			name:  "duplicate alternatives are kept",
			input: "5 Oak Rd",
			candidates: []models.Candidate{
				{
					FormattedAddress: "5 Oak Rd, Salem, OR",
					LocationType:     models.LocationTypeRangeInterpolated,
					Components:       streetComponents("Oak Rd", "Salem"),
				},
				{
					FormattedAddress: "5 Oak Rd, Salem, OR",
					LocationType:     models.LocationTypeGeometricCenter,
					Components:       streetComponents("Oak Rd", "Salem"),
				},
			},
			expected: models.Corrected{Alternatives: []string{"5 Oak Rd, Salem, OR", "5 Oak Rd, Salem, OR"}},
		},
		{
			name:  "typo with enough context is still exact",
			input: "123 Mian St Anytown CA 90210",
			candidates: []models.Candidate{
				{
					FormattedAddress: "123 Main St, Anytown, CA 90210, USA",
					LocationType:     models.LocationTypeRooftop,
					Components:       streetComponents("Main St", "Anytown"),
				},
			},
			expected: models.Exact{
				FormattedAddress: "123 Main St, Anytown, CA 90210, USA",
				Components:       models.ExtractedComponents{StreetName: "Main St", City: "Anytown"},
			},
		},
		{
			name:  "rooftop match far from the input is a single correction",
			input: "Main Street",
			candidates: []models.Candidate{
				{
					FormattedAddress: "456 Oak Avenue, Other City, NY",
					LocationType:     models.LocationTypeRooftop,
					Components:       streetComponents("Oak Avenue", "Other City"),
				},
			},
			expected: models.Corrected{Alternatives: []string{"456 Oak Avenue, Other City, NY"}},
		},
		{
			name:  "rooftop match wins over earlier approximate ones",
			input: "10 Elm St Dayton OH",
			candidates: []models.Candidate{
				{
					FormattedAddress: "10 Elm St, Dayton, TX",
					PartialMatch:     true,
					LocationType:     models.LocationTypeApproximate,
					Components:       streetComponents("Elm St", "Dayton"),
				},
				{
					FormattedAddress: "10 Elm St, Dayton, OH 45402, USA",
					LocationType:     models.LocationTypeRooftop,
					Components:       streetComponents("Elm St", "Dayton"),
				},
			},
			expected: models.Exact{
				FormattedAddress: "10 Elm St, Dayton, OH 45402, USA",
				Components:       models.ExtractedComponents{StreetName: "Elm St", City: "Dayton"},
			},
		},
		{
			name:  "only the first rooftop match is considered",
			input: "10 Elm St Dayton OH 45402",
			candidates: []models.Candidate{
				{
					FormattedAddress: "99 Pine Ave, Reno, NV",
					LocationType:     models.LocationTypeRooftop,
					Components:       streetComponents("Pine Ave", "Reno"),
				},
				{
					FormattedAddress: "10 Elm St, Dayton, OH 45402, USA",
					LocationType:     models.LocationTypeRooftop,
					Components:       streetComponents("Elm St", "Dayton"),
				},
			},
			expected: models.Corrected{Alternatives: []string{"99 Pine Ave, Reno, NV"}},
		},
		{
			name:  "precise match with unknown location type",
			input: "1 Infinite Loop",
			candidates: []models.Candidate{
				{
					FormattedAddress: "1 Infinite Loop, Cupertino, CA",
					LocationType:     models.LocationType("UNKNOWN"),
					Components:       streetComponents("Infinite Loop", "Cupertino"),
				},
			},
			expected: models.Unverifiable{Message: "No precise US match found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Classify(tt.candidates, tt.input)
			assert.Equal(t, tt.expected, outcome)
			assert.Equal(t, tt.expected.Status(), outcome.Status())
		})
	}
}

func TestClassify_AllCountryCandidatesAreUnverifiable(t *testing.T) {
	candidates := make([]models.Candidate, 0, 5)
	for _, lt := range []models.LocationType{
		models.LocationTypeRooftop,
		models.LocationTypeRangeInterpolated,
		models.LocationTypeGeometricCenter,
		models.LocationTypeApproximate,
		"",
	} {
		candidates = append(candidates, models.Candidate{
			FormattedAddress: "United States",
			PartialMatch:     true,
			LocationType:     lt,
			Types:            []string{"country"},
			Components:       streetComponents("Main St", "Springfield"),
		})
	}

	outcome := Classify(candidates, "Main St Springfield")
	assert.Equal(t, models.Unverifiable{Message: MessageNoPreciseMatch}, outcome)
}

func TestClassifier_CustomThreshold(t *testing.T) {
	candidates := []models.Candidate{
		{
			FormattedAddress: "123 Main St, Anytown, CA 90210, USA",
			LocationType:     models.LocationTypeRooftop,
			Components:       streetComponents("Main St", "Anytown"),
		},
	}

	strict := Classify(candidates, "123 Mian St")
	assert.Equal(t, models.StatusCorrected, strict.Status())

	lenient := NewClassifier(0.25).Classify(candidates, "123 Mian St")
	require.IsType(t, models.Exact{}, lenient)
	assert.Equal(t, "123 Main St, Anytown, CA 90210, USA", lenient.(models.Exact).FormattedAddress)
}

func TestClassify_Concurrent(t *testing.T) {
	candidates := []models.Candidate{
		{
			FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA 94043, USA",
			LocationType:     models.LocationTypeRooftop,
			Components:       googleplexComponents(),
		},
	}

	var wg sync.WaitGroup
	results := make([]models.Outcome, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Classify(candidates, "1600 Amphitheatre Pkwy Mountain View CA 94043")
		}(i)
	}
	wg.Wait()

	for _, outcome := range results {
		assert.Equal(t, models.StatusExact, outcome.Status())
	}
}

// Package validation turns a geocoding provider response into an exact, corrected
// or unverifiable outcome. Everything here is pure and safe for concurrent use.
package validation

import "address-validator/internal/models"

const (
	MessageNoAddressFound = "No address found."
	MessageNoPreciseMatch = "No precise US match found."
)

// Classifier classifies provider candidates against the user's input.
type Classifier struct {
	comparator Comparator
}

// NewClassifier returns a classifier whose comparator uses the given similarity threshold.
func NewClassifier(threshold float64) *Classifier {
	return &Classifier{comparator: NewComparator(threshold)}
}

var defaultClassifier = NewClassifier(DefaultSimilarityThreshold)

// Classify classifies candidates with the default similarity threshold.
func Classify(candidates []models.Candidate, input string) models.Outcome {
	return defaultClassifier.Classify(candidates, input)
}

// Classify decides the outcome for candidates, which must be in provider order.
// It never fails; the worst case is Unverifiable.
func (c *Classifier) Classify(candidates []models.Candidate, input string) models.Outcome {
	if len(candidates) == 0 {
		return models.Unverifiable{Message: MessageNoAddressFound}
	}

	filtered := make([]models.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !isCountryOnly(candidate) {
			filtered = append(filtered, candidate)
		}
	}
	if len(filtered) == 0 {
		return models.Unverifiable{Message: MessageNoPreciseMatch}
	}

	// Provider order is relevance order, so only the first precise match counts.
	for _, candidate := range filtered {
		if !isExact(candidate) {
			continue
		}
		if c.comparator.Compare(input, candidate.FormattedAddress) == VerdictValidated {
			return models.Exact{
				FormattedAddress: candidate.FormattedAddress,
				Components:       ExtractComponents(candidate.Components),
			}
		}
		return models.Corrected{Alternatives: []string{candidate.FormattedAddress}}
	}

	var alternatives []string
	for _, candidate := range filtered {
		if isPossible(candidate) {
			alternatives = append(alternatives, candidate.FormattedAddress)
		}
	}
	if len(alternatives) > 0 {
		return models.Corrected{Alternatives: alternatives}
	}

	return models.Unverifiable{Message: MessageNoPreciseMatch}
}

// isCountryOnly reports a partial match that is either a country result or carries
// none of street number, street name, city and postal code. Providers return these
// for junk input because of their country bias.
func isCountryOnly(c models.Candidate) bool {
	if !c.PartialMatch {
		return false
	}
	if c.HasType(models.TagCountry) {
		return true
	}
	e := ExtractComponents(c.Components)
	return e.StreetNumber == "" && e.StreetName == "" && e.City == "" && e.PostalCode == ""
}

func isExact(c models.Candidate) bool {
	return !c.PartialMatch && c.LocationType == models.LocationTypeRooftop
}

func isPossible(c models.Candidate) bool {
	if c.PartialMatch {
		return true
	}
	switch c.LocationType {
	case models.LocationTypeRangeInterpolated, models.LocationTypeGeometricCenter, models.LocationTypeApproximate:
		return true
	default:
		return false
	}
}

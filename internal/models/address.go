package models

import "slices"

// LocationType is the precision tier the provider reports for a candidate's geometry.
type LocationType string

const (
	LocationTypeRooftop           LocationType = "ROOFTOP"
	LocationTypeRangeInterpolated LocationType = "RANGE_INTERPOLATED"
	LocationTypeGeometricCenter   LocationType = "GEOMETRIC_CENTER"
	LocationTypeApproximate       LocationType = "APPROXIMATE"
)

// Component tags used by the provider for address components and result types.
const (
	TagStreetNumber = "street_number"
	TagRoute        = "route"
	TagLocality     = "locality"
	TagPostalTown   = "postal_town"
	TagAdminArea1   = "administrative_area_level_1"
	TagPostalCode   = "postal_code"
	TagCountry      = "country"
)

// AddressComponent is one raw component of a candidate, as returned by the provider.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// HasType reports whether the component carries the given tag.
func (c AddressComponent) HasType(tag string) bool {
	return slices.Contains(c.Types, tag)
}

// Candidate is a single geocoding result for a query.
type Candidate struct {
	FormattedAddress string             `json:"formatted_address"`
	PartialMatch     bool               `json:"partial_match"`
	LocationType     LocationType       `json:"location_type"`
	Types            []string           `json:"types"`
	Components       []AddressComponent `json:"address_components"`
}

// HasType reports whether the candidate itself is tagged with the given result type.
func (c Candidate) HasType(tag string) bool {
	return slices.Contains(c.Types, tag)
}

// ExtractedComponents is the normalized subset of a candidate's components.
// Empty fields mean the provider did not return the corresponding component.
type ExtractedComponents struct {
	StreetNumber string `json:"streetNumber,omitempty"`
	StreetName   string `json:"streetName,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
}

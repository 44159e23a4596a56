package validation

import "address-validator/internal/models"

// componentLookup describes where one ExtractedComponents field comes from.
// Tags are tried in order; the first component carrying a tag wins.
type componentLookup struct {
	tags  []string
	short bool
	set   func(*models.ExtractedComponents, string)
}

var componentLookups = []componentLookup{
	{
		tags: []string{models.TagStreetNumber},
		set:  func(e *models.ExtractedComponents, v string) { e.StreetNumber = v },
	},
	{
		tags: []string{models.TagRoute},
		set:  func(e *models.ExtractedComponents, v string) { e.StreetName = v },
	},
	{
		tags: []string{models.TagLocality, models.TagPostalTown},
		set:  func(e *models.ExtractedComponents, v string) { e.City = v },
	},
	{
		tags:  []string{models.TagAdminArea1},
		short: true,
		set:   func(e *models.ExtractedComponents, v string) { e.State = v },
	},
	{
		tags: []string{models.TagPostalCode},
		set:  func(e *models.ExtractedComponents, v string) { e.PostalCode = v },
	},
}

// ExtractComponents picks street number, street name, city, state and postal code
// out of a provider component list. Missing components leave the field empty.
func ExtractComponents(components []models.AddressComponent) models.ExtractedComponents {
	var extracted models.ExtractedComponents
	for _, lookup := range componentLookups {
		for _, tag := range lookup.tags {
			if value, ok := findComponent(components, tag, lookup.short); ok {
				lookup.set(&extracted, value)
				break
			}
		}
	}
	return extracted
}

// findComponent returns the first component tagged with tag, using its short
// name when short is set and the component has one.
func findComponent(components []models.AddressComponent, tag string, short bool) (string, bool) {
	for _, c := range components {
		if !c.HasType(tag) {
			continue
		}
		if short && c.ShortName != "" {
			return c.ShortName, true
		}
		return c.LongName, true
	}
	return "", false
}

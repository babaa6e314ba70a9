package client

import (
	"net/url"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// Filters survive a round trip through URL query parameters
func TestProperty_FilterRoundTripsThroughURLValues(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("FilterFromValues(f.Values()) == f", prop.ForAll(
		func(category, brand, search string) bool {
			filter := ProductFilter{Category: category, Brand: brand, Search: search}
			return FilterFromValues(filter.Values()) == filter
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("round trip survives string encoding", prop.ForAll(
		func(category, brand, search string) bool {
			filter := ProductFilter{Category: category, Brand: brand, Search: search}
			parsed, err := url.ParseQuery(filter.Values().Encode())
			if err != nil {
				return false
			}
			return FilterFromValues(parsed) == filter
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductFilter_IsZero(t *testing.T) {
	assert.True(t, ProductFilter{}.IsZero())
	assert.False(t, ProductFilter{Category: "Grains"}.IsZero())
	assert.False(t, ProductFilter{Search: "rice"}.IsZero())
}

func TestProductFilter_EmptyFieldsAreOmitted(t *testing.T) {
	values := ProductFilter{Category: "Grains"}.Values()

	assert.Equal(t, "Grains", values.Get("category"))
	_, hasBrand := values["brand"]
	_, hasSearch := values["search"]
	assert.False(t, hasBrand)
	assert.False(t, hasSearch)
}

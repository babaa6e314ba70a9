package client

import "net/url"

// ProductFilter narrows product listings. The zero value selects everything;
// assigning the zero value is how "clear filters" works.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
}

// Values encodes the filter as URL query parameters. Empty fields are
// omitted, so the encoding round-trips through FilterFromValues.
func (f ProductFilter) Values() url.Values {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Brand != "" {
		values.Set("brand", f.Brand)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

// FilterFromValues reads a filter back from URL query parameters, so a shared
// listing URL pre-selects the same filters.
func FilterFromValues(values url.Values) ProductFilter {
	return ProductFilter{
		Category: values.Get("category"),
		Brand:    values.Get("brand"),
		Search:   values.Get("search"),
	}
}

// IsZero reports whether the filter selects everything
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

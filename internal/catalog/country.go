package catalog

import (
	"fmt"

	"github.com/corray333/backend-labs/marketing/internal/service/models/country"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryResolver resolves ISO 3166 codes to English display names.
type CountryResolver struct {
	names display.Namer
}

// NewCountryResolver creates a new CountryResolver.
func NewCountryResolver() *CountryResolver {
	return &CountryResolver{names: display.English.Regions()}
}

// Resolve returns the country info for code.
func (r *CountryResolver) Resolve(code string) (country.Info, error) {
	parsed, err := country.ParseCode(code)
	if err != nil {
		return country.Info{}, fmt.Errorf("failed to parse country code %q: %w", code, err)
	}

	region, err := language.ParseRegion(parsed.String())
	if err != nil {
		return country.Info{}, fmt.Errorf("failed to parse region %q: %w", parsed, err)
	}
	if !region.IsCountry() {
		return country.Info{}, fmt.Errorf("region %q is not a country: %w", parsed, country.ErrInvalidCode)
	}

	return country.Info{
		Code: parsed,
		Name: r.names.Name(region),
	}, nil
}

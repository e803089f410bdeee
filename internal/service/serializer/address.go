package serializer

import (
	"log/slog"
	"strings"

	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
)

// FormatAddress flattens a into the payload address object. Verbose output
// adds the region and country display names. A nil address yields nil.
func (s *Serializer) FormatAddress(a *order.Address, verbose bool) *event.FormattedAddress {
	if a == nil {
		return nil
	}

	formatted := &event.FormattedAddress{
		Name:        strings.TrimSpace(a.FirstName + " " + a.LastName),
		Company:     a.Company,
		Telephone:   a.Telephone,
		Street1:     streetLine(a.Street, 0),
		Street2:     strings.Join(tail(a.Street, 1), " "),
		City:        a.City,
		StateCode:   a.RegionCode,
		PostalCode:  a.Postcode,
		CountryCode: a.CountryID,
	}

	if !verbose {
		return formatted
	}

	formatted.State = a.Region
	formatted.Country = a.CountryID
	if a.CountryID != "" {
		info, err := s.countries.Resolve(a.CountryID)
		if err != nil {
			slog.Warn("Failed to resolve country, using code", "country_id", a.CountryID, "error", err)
		} else if info.Name != "" {
			formatted.Country = info.Name
		}
	}

	return formatted
}

func streetLine(street []string, i int) string {
	if i < len(street) {
		return street[i]
	}

	return ""
}

func tail(street []string, from int) []string {
	if from >= len(street) {
		return nil
	}

	return street[from:]
}

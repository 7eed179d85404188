package geo

import "strings"

// DefaultCountry is used when nothing in the principal metadata resolves.
const DefaultCountry = "US"

// countryNames maps lowercase country names to ISO 3166-1 alpha-2 codes.
// Covers the major markets the directory API serves.
var countryNames = map[string]string{
	"united states":  "US",
	"canada":         "CA",
	"united kingdom": "GB",
	"germany":        "DE",
	"france":         "FR",
	"spain":          "ES",
	"italy":          "IT",
	"netherlands":    "NL",
	"australia":      "AU",
	"india":          "IN",
	"singapore":      "SG",
	"japan":          "JP",
	"brazil":         "BR",
	"mexico":         "MX",
}

// locationHint matches a substring of a free-text location to a country.
type locationHint struct {
	substr string
	code   string
}

// Ordered: first match wins, so country names come before city names.
var locationHints = []locationHint{
	{"spain", "ES"},
	{"españa", "ES"},
	{"barcelona", "ES"},
	{"madrid", "ES"},
	{"france", "FR"},
	{"paris", "FR"},
	{"germany", "DE"},
	{"berlin", "DE"},
	{"italy", "IT"},
	{"netherlands", "NL"},
	{"amsterdam", "NL"},
	{"united kingdom", "GB"},
	{"london", "GB"},
	{"canada", "CA"},
	{"australia", "AU"},
	{"united states", "US"},
	{"new york", "US"},
	{"san francisco", "US"},
}

// ResolveCountry derives a two-letter country code from identity-provider
// metadata. Resolution is best effort and always succeeds; a wrong code only
// skews search filtering and message language, never persistence.
//
// Priority: explicit country field, then free-text location, then locale of
// the form language_country, then the default.
func ResolveCountry(metadata map[string]string) string {
	if country := strings.TrimSpace(metadata["country"]); country != "" {
		if code, ok := countryNames[strings.ToLower(country)]; ok {
			return code
		}
		// Best effort: assume the value starts with a usable code.
		if len(country) >= 2 {
			return strings.ToUpper(country[:2])
		}
		return DefaultCountry
	}

	if location := strings.ToLower(strings.TrimSpace(metadata["location"])); location != "" {
		for _, hint := range locationHints {
			if strings.Contains(location, hint.substr) {
				return hint.code
			}
		}
	}

	if locale := strings.TrimSpace(metadata["locale"]); locale != "" {
		if parts := strings.Split(locale, "_"); len(parts) > 1 && parts[1] != "" {
			return strings.ToUpper(parts[1])
		}
	}

	return DefaultCountry
}

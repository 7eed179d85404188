package geo

// DefaultLanguage is used for countries without a mapping.
const DefaultLanguage = "English"

// countryLanguages maps country codes to the natural language outreach
// messages should be written in.
var countryLanguages = map[string]string{
	"US": "English",
	"GB": "English",
	"CA": "English",
	"AU": "English",
	"IN": "English",
	"SG": "English",
	"ES": "Spanish",
	"MX": "Spanish",
	"FR": "French",
	"DE": "German",
	"IT": "Italian",
	"NL": "Dutch",
	"BR": "Portuguese",
	"PT": "Portuguese",
	"JP": "Japanese",
}

// LanguageFor returns the outreach language for a country code.
func LanguageFor(countryCode string) string {
	if lang, ok := countryLanguages[countryCode]; ok {
		return lang
	}
	return DefaultLanguage
}

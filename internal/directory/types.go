package directory

import (
	"encoding/json"
	"strings"
)

// Company is an organization attached to a position record. Older API
// revisions expose a single domain, newer ones a domains list.
type Company struct {
	Name    string   `json:"name"`
	Domain  string   `json:"domain"`
	Domains []string `json:"domains"`
}

// PrimaryDomain returns the best available company domain, or "".
func (c *Company) PrimaryDomain() string {
	if c == nil {
		return ""
	}
	if c.Domain != "" {
		return c.Domain
	}
	if len(c.Domains) > 0 {
		return c.Domains[0]
	}
	return ""
}

// Location tolerates both the free-text and the structured shape the
// positions API has returned across revisions.
type Location struct {
	Raw     string
	City    string
	Country string
}

// UnmarshalJSON accepts either a plain string or {city, country}. Anything
// else decodes to an empty location rather than failing the record.
func (l *Location) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		l.Raw = raw
		return nil
	}
	var structured struct {
		City    string `json:"city"`
		Country string `json:"country"`
	}
	if err := json.Unmarshal(data, &structured); err == nil {
		l.City = structured.City
		l.Country = structured.Country
	}
	return nil
}

// String renders the location as display text, or "" when unknown.
func (l Location) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	parts := make([]string, 0, 2)
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

// Position is one raw record from the positions API. Every field is optional;
// the normalizer applies defaults.
type Position struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Company         *Company `json:"company"`
	CurrentCompany  *Company `json:"currentCompany"`
	Location        Location `json:"location"`
	LinkedInURL     string   `json:"linkedInUrl"`
	ProfilePhotoURL string   `json:"profilePhotoUrl"`
	WorkEmail       string   `json:"workEmail"`
	PersonalEmail   string   `json:"personalEmail"`
	PhoneNumber     string   `json:"phoneNumber"`
	DirectDial      string   `json:"directDial"`
	StartDate       string   `json:"startDate"`
}

// Employer returns whichever company variant the record carries.
func (p Position) Employer() *Company {
	if p.Company != nil {
		return p.Company
	}
	return p.CurrentCompany
}

// Phone returns the first available phone number variant.
func (p Position) Phone() string {
	if p.PhoneNumber != "" {
		return p.PhoneNumber
	}
	return p.DirectDial
}

// decodePositions unpacks the response envelope. The API has shipped both a
// flat data array and a nested data.items array; both are accepted. A body
// that matches neither shape yields zero records, not an error.
func decodePositions(body []byte) []Position {
	if len(body) == 0 {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return nil
	}

	var flat []Position
	if err := json.Unmarshal(envelope.Data, &flat); err == nil {
		return flat
	}

	var nested struct {
		Items []Position `json:"items"`
	}
	if err := json.Unmarshal(envelope.Data, &nested); err == nil {
		return nested.Items
	}
	return nil
}

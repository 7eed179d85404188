package prospects

import "time"

// Defaults applied when the directory omits a field.
const (
	UnknownName    = "Unknown"
	UnknownTitle   = "Unknown Title"
	UnknownCompany = "Unknown Company"

	// SourceTag marks which directory a prospect came from.
	SourceTag = "theorg.com"
)

// ProfileData is the open, additive part of a prospect record. Nothing
// downstream requires any of these fields.
type ProfileData struct {
	WorkEmail     string `json:"work_email,omitempty"`
	PersonalEmail string `json:"personal_email,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	CompanyDomain string `json:"company_domain,omitempty"`
	Source        string `json:"source,omitempty"`
}

// Prospect is a normalized candidate contact surfaced to the user.
type Prospect struct {
	ID       string `json:"id"`
	OwnerID  string `json:"-"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location,omitempty"`

	LinkedInURL string `json:"linkedin_url,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`

	// Always zero: connection-graph analysis is a stub, kept for the UI shape.
	MutualConnections int `json:"mutual_connections"`

	ProfileData ProfileData `json:"profile_data"`
	CreatedAt   time.Time   `json:"created_at"`
}

package prospects

import (
	"github.com/bcnlabs/prospect-ai-platform/internal/directory"
)

// Normalize converts raw directory records into canonical prospects and drops
// duplicates. Every source field is optional; documented defaults apply. The
// search country stands in for a missing location. Never fails: malformed or
// empty input yields an empty list.
func Normalize(records []directory.Position, countryCode string) []Prospect {
	if len(records) == 0 {
		return []Prospect{}
	}

	out := make([]Prospect, 0, len(records))
	seenLinkedIn := make(map[string]struct{})
	seenEmail := make(map[string]struct{})
	seenNameCompany := make(map[[2]string]struct{})

	for _, record := range records {
		p := normalizeOne(record, countryCode)

		if p.LinkedInURL != "" {
			if _, dup := seenLinkedIn[p.LinkedInURL]; dup {
				continue
			}
		}
		if p.ProfileData.WorkEmail != "" {
			if _, dup := seenEmail[p.ProfileData.WorkEmail]; dup {
				continue
			}
		}
		nameCompany := [2]string{p.Name, p.Company}
		if _, dup := seenNameCompany[nameCompany]; dup {
			continue
		}

		if p.LinkedInURL != "" {
			seenLinkedIn[p.LinkedInURL] = struct{}{}
		}
		if p.ProfileData.WorkEmail != "" {
			seenEmail[p.ProfileData.WorkEmail] = struct{}{}
		}
		seenNameCompany[nameCompany] = struct{}{}

		out = append(out, p)
	}
	return out
}

func normalizeOne(record directory.Position, countryCode string) Prospect {
	p := Prospect{
		Name:              record.Name,
		Title:             record.Title,
		Location:          record.Location.String(),
		LinkedInURL:       record.LinkedInURL,
		AvatarURL:         record.ProfilePhotoURL,
		MutualConnections: 0,
		ProfileData: ProfileData{
			WorkEmail:     record.WorkEmail,
			PersonalEmail: record.PersonalEmail,
			PhoneNumber:   record.Phone(),
			StartDate:     record.StartDate,
			CompanyDomain: record.Employer().PrimaryDomain(),
			Source:        SourceTag,
		},
	}

	if employer := record.Employer(); employer != nil && employer.Name != "" {
		p.Company = employer.Name
	} else {
		p.Company = UnknownCompany
	}
	if p.Name == "" {
		p.Name = UnknownName
	}
	if p.Title == "" {
		p.Title = UnknownTitle
	}
	if p.Location == "" {
		p.Location = countryCode
	}
	return p
}

package enums

import "fmt"

// CampaignVisibility controls whether a campaign shows up in the public browse views.
type CampaignVisibility string

const (
	CampaignVisibilityPublic  CampaignVisibility = "public"
	CampaignVisibilityPrivate CampaignVisibility = "private"
)

var validCampaignVisibilities = []CampaignVisibility{
	CampaignVisibilityPublic,
	CampaignVisibilityPrivate,
}

// String implements fmt.Stringer.
func (v CampaignVisibility) String() string {
	return string(v)
}

// IsValid reports whether the value is a known CampaignVisibility.
func (v CampaignVisibility) IsValid() bool {
	for _, candidate := range validCampaignVisibilities {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseCampaignVisibility converts raw input into a CampaignVisibility.
func ParseCampaignVisibility(value string) (CampaignVisibility, error) {
	for _, candidate := range validCampaignVisibilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign visibility %q", value)
}

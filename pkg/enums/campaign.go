package enums

import "fmt"

// CampaignStatus is the lifecycle state of a promotional campaign.
type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "draft"
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusPaused CampaignStatus = "paused"
)

var validCampaignStatuses = []CampaignStatus{
	CampaignStatusDraft,
	CampaignStatusActive,
	CampaignStatusPaused,
}

// String implements fmt.Stringer.
func (s CampaignStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CampaignStatus.
func (s CampaignStatus) IsValid() bool {
	for _, candidate := range validCampaignStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCampaignStatus converts raw input into a CampaignStatus.
func ParseCampaignStatus(value string) (CampaignStatus, error) {
	for _, candidate := range validCampaignStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign status %q", value)
}

// CampaignType determines how the campaign value is interpreted.
type CampaignType string

const (
	CampaignTypePercent CampaignType = "PERCENT"
	CampaignTypeFixed   CampaignType = "FIXED"
)

var validCampaignTypes = []CampaignType{
	CampaignTypePercent,
	CampaignTypeFixed,
}

// String implements fmt.Stringer.
func (t CampaignType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CampaignType.
func (t CampaignType) IsValid() bool {
	for _, candidate := range validCampaignTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCampaignType converts raw input into a CampaignType.
func ParseCampaignType(value string) (CampaignType, error) {
	for _, candidate := range validCampaignTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign type %q", value)
}

// CampaignScope restricts which lines a campaign can discount.
type CampaignScope string

const (
	CampaignScopeAll        CampaignScope = "ALL"
	CampaignScopeCategories CampaignScope = "CATEGORIES"
	CampaignScopeProducts   CampaignScope = "PRODUCTS"
)

var validCampaignScopes = []CampaignScope{
	CampaignScopeAll,
	CampaignScopeCategories,
	CampaignScopeProducts,
}

// String implements fmt.Stringer.
func (s CampaignScope) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CampaignScope.
func (s CampaignScope) IsValid() bool {
	for _, candidate := range validCampaignScopes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCampaignScope converts raw input into a CampaignScope.
func ParseCampaignScope(value string) (CampaignScope, error) {
	for _, candidate := range validCampaignScopes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign scope %q", value)
}

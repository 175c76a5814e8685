package campaigns

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-engine/pkg/db/models"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Campaign is a promotional rule evaluated at render and checkout time.
// Stackable is stored but never consulted: at most one campaign applies.
type Campaign struct {
	ID          string               `json:"id"`
	TenantID    string               `json:"tenant_id"`
	Name        string               `json:"name"`
	Status      enums.CampaignStatus `json:"status"`
	Type        enums.CampaignType   `json:"type"`
	Value       decimal.Decimal      `json:"value"`
	AppliesTo   enums.CampaignScope  `json:"applies_to"`
	CategoryIDs []string             `json:"category_ids,omitempty"`
	ProductIDs  []string             `json:"product_ids,omitempty"`
	StartAt     *time.Time           `json:"start_at,omitempty"`
	EndAt       *time.Time           `json:"end_at,omitempty"`
	Stackable   bool                 `json:"stackable"`
	Priority    int                  `json:"priority"`
}

// Validate checks the campaign's invariants and reports every violation at
// once as a validation error with per-field details.
func Validate(c Campaign) error {
	details := map[string]string{}
	var errs error
	fail := func(field, msg string) {
		details[field] = msg
		errs = multierr.Append(errs, fmt.Errorf("%s %s", field, msg))
	}

	if strings.TrimSpace(c.TenantID) == "" {
		fail("tenant_id", "is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		fail("name", "is required")
	}
	if !c.Status.IsValid() {
		fail("status", "is invalid")
	}
	switch c.Type {
	case enums.CampaignTypePercent:
		if c.Value.IsNegative() || c.Value.GreaterThan(hundred) {
			fail("value", "must be between 0 and 100")
		}
	case enums.CampaignTypeFixed:
		if c.Value.IsNegative() {
			fail("value", "must be at least 0")
		}
	default:
		fail("type", "is invalid")
	}
	switch c.AppliesTo {
	case enums.CampaignScopeAll:
	case enums.CampaignScopeCategories:
		if len(c.CategoryIDs) == 0 {
			fail("category_ids", "is required for category campaigns")
		}
	case enums.CampaignScopeProducts:
		if len(c.ProductIDs) == 0 {
			fail("product_ids", "is required for product campaigns")
		}
	default:
		fail("applies_to", "is invalid")
	}
	if c.StartAt != nil && c.EndAt != nil && c.EndAt.Before(*c.StartAt) {
		fail("end_at", "must not be before start_at")
	}

	if errs == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid campaign").WithDetails(details)
}

func fromModel(m models.Campaign) Campaign {
	return Campaign{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Status:      m.Status,
		Type:        m.Type,
		Value:       m.Value,
		AppliesTo:   m.AppliesTo,
		CategoryIDs: []string(m.CategoryIDs),
		ProductIDs:  []string(m.ProductIDs),
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		Stackable:   m.Stackable,
		Priority:    m.Priority,
	}
}

func toModel(c Campaign) models.Campaign {
	return models.Campaign{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Name:        c.Name,
		Status:      c.Status,
		Type:        c.Type,
		Value:       c.Value,
		AppliesTo:   c.AppliesTo,
		CategoryIDs: c.CategoryIDs,
		ProductIDs:  c.ProductIDs,
		StartAt:     c.StartAt,
		EndAt:       c.EndAt,
		Stackable:   c.Stackable,
		Priority:    c.Priority,
	}
}

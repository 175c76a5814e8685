package campaigns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

const centPlaces = 2

// Result is the outcome of campaign selection for one price.
type Result struct {
	Discount decimal.Decimal `json:"discount"`
	Campaign *Campaign       `json:"campaign,omitempty"`
}

// Applied reports whether a campaign was chosen.
func (r Result) Applied() bool {
	return r.Campaign != nil
}

// Applicable reports whether c can discount a line of productID/categoryID at now.
func Applicable(c Campaign, productID, categoryID string, now time.Time) bool {
	if c.Status != enums.CampaignStatusActive {
		return false
	}
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return false
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return false
	}
	switch c.AppliesTo {
	case enums.CampaignScopeAll:
		return true
	case enums.CampaignScopeCategories:
		return categoryID != "" && contains(c.CategoryIDs, categoryID)
	case enums.CampaignScopeProducts:
		return productID != "" && contains(c.ProductIDs, productID)
	default:
		return false
	}
}

// Discount computes what c takes off price. PERCENT is rounded to cents;
// both types are clamped so the discounted price never goes below zero.
func Discount(c Campaign, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || c.Value.IsNegative() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	switch c.Type {
	case enums.CampaignTypePercent:
		amount = price.Mul(c.Value).Div(hundred).Round(centPlaces)
	case enums.CampaignTypeFixed:
		amount = c.Value
	default:
		return decimal.Zero
	}
	return decimal.Min(amount, price)
}

// Select picks the single applicable campaign with the highest priority and
// returns its discount on price. Equal priorities resolve to the lowest id.
// No applicable campaign yields a zero discount.
func Select(price decimal.Decimal, campaigns []Campaign, productID, categoryID string, now time.Time) Result {
	var best *Campaign
	for i := range campaigns {
		candidate := &campaigns[i]
		if !Applicable(*candidate, productID, categoryID, now) {
			continue
		}
		if best == nil || outranks(*candidate, *best) {
			best = candidate
		}
	}
	if best == nil {
		return Result{Discount: decimal.Zero}
	}
	chosen := *best
	return Result{Discount: Discount(chosen, price), Campaign: &chosen}
}

func outranks(a, b Campaign) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.ID < b.ID
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

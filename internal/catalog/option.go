package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

// OptionItem is one concrete value within an option group (e.g. "L").
type OptionItem struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	PriceDelta      *decimal.Decimal    `json:"price_delta,omitempty"`
	SortOrder       int                 `json:"sort_order"`
	Enabled         bool                `json:"enabled"`
	DefaultSelected bool                `json:"default_selected"`
	Placement       enums.ItemPlacement `json:"placement,omitempty"`
	Stock           *int                `json:"stock,omitempty"`
}

// Delta returns the item's price delta, treating an absent delta as zero.
func (i OptionItem) Delta() decimal.Decimal {
	if i.PriceDelta == nil {
		return decimal.Zero
	}
	return *i.PriceDelta
}

// OptionGroup is a named customization axis with an ordered list of items.
type OptionGroup struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Type               enums.OptionGroupType `json:"type"`
	SelectionType      enums.SelectionType   `json:"selection_type"`
	Required           bool                  `json:"required"`
	MinSelected        int                   `json:"min_selected"`
	MaxSelected        int                   `json:"max_selected"`
	AllowHalfPlacement bool                  `json:"allow_half_placement"`
	Items              []OptionItem          `json:"items"`
}

// Item looks up an item by id.
func (g OptionGroup) Item(itemID string) (OptionItem, bool) {
	for _, item := range g.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return OptionItem{}, false
}

// HalfCapable reports whether any item of the group can be placed on a half.
func (g OptionGroup) HalfCapable() bool {
	if g.AllowHalfPlacement {
		return true
	}
	for _, item := range g.Items {
		if item.Placement.IsHalf() {
			return true
		}
	}
	return false
}

// ItemHalfPlaceable reports whether the given item may be moved off WHOLE.
func (g OptionGroup) ItemHalfPlaceable(itemID string) bool {
	item, ok := g.Item(itemID)
	if !ok {
		return false
	}
	return g.AllowHalfPlacement || item.Placement.IsHalf()
}

// OptionPair binds one option item to its group.
type OptionPair struct {
	GroupID  string `json:"group_id"`
	OptionID string `json:"option_id"`
}

// ProductVariant is one purchasable combination of option values.
type ProductVariant struct {
	ID            string           `json:"id"`
	Options       []OptionPair     `json:"options"`
	Stock         int              `json:"stock"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// Key returns the variant's canonical key.
func (v ProductVariant) Key() string {
	return CanonicalKey(v.Options)
}

// Product is the materialized catalog aggregate the engine works on.
type Product struct {
	ID           string            `json:"id"`
	TenantID     string            `json:"tenant_id"`
	CategoryID   string            `json:"category_id"`
	Name         string            `json:"name"`
	Type         enums.ProductType `json:"type"`
	BasePrice    decimal.Decimal   `json:"base_price"`
	OptionGroups []OptionGroup     `json:"option_groups"`
	Variants     []ProductVariant  `json:"variants"`
}

// Group looks up an option group by id.
func (p Product) Group(groupID string) (OptionGroup, bool) {
	for _, group := range p.OptionGroups {
		if group.ID == groupID {
			return group, true
		}
	}
	return OptionGroup{}, false
}

// UsesAddonPlacement reports whether selections in the group go through the
// addon placement store instead of single-item variant resolution.
func (p Product) UsesAddonPlacement(group OptionGroup) bool {
	if group.HalfCapable() {
		return true
	}
	return p.Type == enums.ProductTypePizza && group.SelectionType == enums.SelectionTypeMulti
}

package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/campaigns"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

// CartItem is one line ready for pricing: the stored product snapshot needed
// to recompute its unit price plus the chosen options. Build it with
// CartItemFor; it is never decoded from client input.
type CartItem struct {
	ProductID         string                   `json:"product_id"`
	CategoryID        string                   `json:"category_id"`
	Quantity          int                      `json:"quantity"`
	BasePrice         decimal.Decimal          `json:"base_price"`
	UnitPriceOverride *decimal.Decimal         `json:"unit_price_override,omitempty"`
	SelectedOptions   []catalog.GroupSelection `json:"selected_options"`
	OptionGroups      []catalog.OptionGroup    `json:"option_groups"`
}

// Line is the priced form of a cart item. Subtotal already includes the
// quantity; Discount and Total are derived from it.
type Line struct {
	ProductID string              `json:"product_id"`
	UnitPrice decimal.Decimal     `json:"unit_price"`
	Quantity  int                 `json:"quantity"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Discount  decimal.Decimal     `json:"discount"`
	Total     decimal.Decimal     `json:"total"`
	Campaign  *campaigns.Campaign `json:"campaign,omitempty"`
}

// Cart aggregates priced lines. Every amount is in Currency.
type Cart struct {
	Lines         []Line          `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Total         decimal.Decimal `json:"total"`
	Currency      enums.Currency  `json:"currency,omitempty"`
}

// UnitPrice returns override when set, otherwise base plus the delta of every
// selected item. Unknown or disabled items and repeated ids add nothing.
func UnitPrice(base decimal.Decimal, override *decimal.Decimal, options []catalog.GroupSelection, groups []catalog.OptionGroup) decimal.Decimal {
	if override != nil {
		return *override
	}

	byID := make(map[string]catalog.OptionGroup, len(groups))
	for _, group := range groups {
		byID[group.ID] = group
	}

	price := base
	seen := map[string]struct{}{}
	for _, sel := range options {
		group, ok := byID[sel.GroupID]
		if !ok {
			continue
		}
		for _, itemID := range sel.ItemIDs {
			item, ok := group.Item(itemID)
			if !ok || !item.Enabled {
				continue
			}
			key := group.ID + "\x00" + item.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			price = price.Add(item.Delta())
		}
	}
	return price
}

// PriceLine prices one cart item and applies the best campaign to the line
// subtotal.
func PriceLine(item CartItem, list []campaigns.Campaign, now time.Time) Line {
	qty := item.Quantity
	if qty < 0 {
		qty = 0
	}
	unit := UnitPrice(item.BasePrice, item.UnitPriceOverride, item.SelectedOptions, item.OptionGroups)
	subtotal := unit.Mul(decimal.NewFromInt(int64(qty)))

	res := campaigns.Select(subtotal, list, item.ProductID, item.CategoryID, now)
	total := subtotal.Sub(res.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Line{
		ProductID: item.ProductID,
		UnitPrice: unit,
		Quantity:  qty,
		Subtotal:  subtotal,
		Discount:  res.Discount,
		Total:     total,
		Campaign:  res.Campaign,
	}
}

// PriceCart prices every item and sums the line figures.
func PriceCart(items []CartItem, list []campaigns.Campaign, now time.Time) Cart {
	cart := Cart{
		Lines:         make([]Line, 0, len(items)),
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, item := range items {
		line := PriceLine(item, list, now)
		cart.Lines = append(cart.Lines, line)
		cart.Subtotal = cart.Subtotal.Add(line.Subtotal)
		cart.DiscountTotal = cart.DiscountTotal.Add(line.Discount)
		cart.Total = cart.Total.Add(line.Total)
	}
	return cart
}

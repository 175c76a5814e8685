package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

func money(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func itemsOf(ids ...string) []OptionItem {
	items := make([]OptionItem, len(ids))
	for i, id := range ids {
		items[i] = OptionItem{ID: id, Name: id, SortOrder: i, Enabled: true}
	}
	return items
}

func singleGroup(id string, itemIDs ...string) OptionGroup {
	return OptionGroup{
		ID:            id,
		Name:          id,
		Type:          enums.OptionGroupTypeCustom,
		SelectionType: enums.SelectionTypeSingle,
		Required:      true,
		Items:         itemsOf(itemIDs...),
	}
}

func groupsWithCounts(counts []int) []OptionGroup {
	groups := make([]OptionGroup, len(counts))
	for g, n := range counts {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("g%d-o%d", g, i)
		}
		groups[g] = singleGroup(fmt.Sprintf("g%d", g), ids...)
	}
	return groups
}

func shirtProduct() Product {
	size := singleGroup("size", "S", "M", "L")
	size.Type = enums.OptionGroupTypeSize
	color := singleGroup("color", "red", "blue")
	color.Type = enums.OptionGroupTypeColor
	return Product{
		ID:           "shirt",
		CategoryID:   "apparel",
		Type:         enums.ProductTypeStandard,
		BasePrice:    decimal.NewFromInt(40),
		OptionGroups: []OptionGroup{size, color},
	}
}

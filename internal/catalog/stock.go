package catalog

// StockAvailability is the aggregated stock for one option value.
type StockAvailability struct {
	Unconstrained bool `json:"unconstrained"`
	Total         int  `json:"total"`
}

// Available reports whether the option chip should stay enabled.
func (s StockAvailability) Available() bool {
	return s.Unconstrained || s.Total > 0
}

// AggregateStock sums stock over every variant containing pair. It ignores
// joint availability with other chosen options; the matched variant's stock
// stays authoritative at commit time.
func AggregateStock(variants []ProductVariant, pair OptionPair) StockAvailability {
	if len(variants) == 0 {
		return StockAvailability{Unconstrained: true}
	}
	total := 0
	for _, variant := range variants {
		for _, candidate := range variant.Options {
			if candidate == pair {
				total += variant.Stock
				break
			}
		}
	}
	return StockAvailability{Total: total}
}

// AvailabilityByOption aggregates stock for every item of every group, keyed
// by group id then item id.
func AvailabilityByOption(product Product) map[string]map[string]StockAvailability {
	out := make(map[string]map[string]StockAvailability, len(product.OptionGroups))
	for _, group := range product.OptionGroups {
		perItem := make(map[string]StockAvailability, len(group.Items))
		for _, item := range group.Items {
			perItem[item.ID] = AggregateStock(product.Variants, OptionPair{GroupID: group.ID, OptionID: item.ID})
		}
		out[group.ID] = perItem
	}
	return out
}

package catalog

import "github.com/shopspring/decimal"

// VariantIndex maps canonical keys to variants. It backs both selection
// matching and regenerate merging.
type VariantIndex struct {
	byKey map[string]ProductVariant
}

// NewVariantIndex indexes variants by canonical key; the first variant wins
// when two share a key.
func NewVariantIndex(variants []ProductVariant) VariantIndex {
	byKey := make(map[string]ProductVariant, len(variants))
	for _, variant := range variants {
		key := variant.Key()
		if _, exists := byKey[key]; exists {
			continue
		}
		byKey[key] = variant
	}
	return VariantIndex{byKey: byKey}
}

// Lookup returns the variant stored under key.
func (idx VariantIndex) Lookup(key string) (ProductVariant, bool) {
	variant, ok := idx.byKey[key]
	return variant, ok
}

// Len returns the number of distinct keys.
func (idx VariantIndex) Len() int {
	return len(idx.byKey)
}

// Match resolves a selection of one option id per group to a variant. The
// selection's group set must equal the variant's exactly; keys are injective
// over valid ids, so an equal key means equal pairs.
func (idx VariantIndex) Match(selection map[string]string) (ProductVariant, bool) {
	if len(selection) == 0 {
		return ProductVariant{}, false
	}
	pairs := make([]OptionPair, 0, len(selection))
	for groupID, optionID := range selection {
		if !ValidKeyPart(groupID) || !ValidKeyPart(optionID) {
			return ProductVariant{}, false
		}
		pairs = append(pairs, OptionPair{GroupID: groupID, OptionID: optionID})
	}
	variant, ok := idx.byKey[CanonicalKey(pairs)]
	return variant, ok
}

// MatchVariant resolves selection against the product's variants. Addon
// groups of pizza-style products are never part of the selection.
func MatchVariant(product Product, selection map[string]string) (ProductVariant, bool) {
	if len(product.Variants) == 0 {
		return ProductVariant{}, false
	}
	return NewVariantIndex(product.Variants).Match(selection)
}

// SelectionFromVariant turns a variant's pairs back into a selection.
func SelectionFromVariant(variant ProductVariant) map[string]string {
	selection := make(map[string]string, len(variant.Options))
	for _, pair := range variant.Options {
		selection[pair.GroupID] = pair.OptionID
	}
	return selection
}

func cloneDecimal(value *decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

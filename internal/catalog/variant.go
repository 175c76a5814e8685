package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	keyPairSeparator = "|"
	keyPartSeparator = ":"
)

var newVariantID = uuid.NewString

// ValidKeyPart reports whether id can appear in a canonical key. Ids carrying
// either separator would let two different pair sets render the same key.
func ValidKeyPart(id string) bool {
	return id != "" && !strings.ContainsAny(id, keyPairSeparator+keyPartSeparator)
}

// CanonicalKey renders pairs as "groupId:optionId|groupId:optionId", sorted by
// group id then option id. It is the only identity used to match variants.
func CanonicalKey(pairs []OptionPair) string {
	sorted := make([]OptionPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].GroupID != sorted[j].GroupID {
			return sorted[i].GroupID < sorted[j].GroupID
		}
		return sorted[i].OptionID < sorted[j].OptionID
	})

	parts := make([]string, len(sorted))
	for i, pair := range sorted {
		parts[i] = pair.GroupID + keyPartSeparator + pair.OptionID
	}
	return strings.Join(parts, keyPairSeparator)
}

// NonEmptyGroups drops groups without items; only these take part in variants.
func NonEmptyGroups(groups []OptionGroup) []OptionGroup {
	out := make([]OptionGroup, 0, len(groups))
	for _, group := range groups {
		if len(group.Items) > 0 {
			out = append(out, group)
		}
	}
	return out
}

// GenerateCombinations expands the non-empty groups into their cartesian
// product. The result holds exactly prod(len(items)) combinations, each with
// one pair per group in group order. No non-empty groups yields no combinations.
func GenerateCombinations(groups []OptionGroup) [][]OptionPair {
	groups = NonEmptyGroups(groups)
	if len(groups) == 0 {
		return nil
	}

	combos := [][]OptionPair{{}}
	for _, group := range groups {
		next := make([][]OptionPair, 0, len(combos)*len(group.Items))
		for _, combo := range combos {
			for _, item := range group.Items {
				branch := make([]OptionPair, len(combo), len(combo)+1)
				copy(branch, combo)
				branch = append(branch, OptionPair{GroupID: group.ID, OptionID: item.ID})
				next = append(next, branch)
			}
		}
		combos = next
	}
	return combos
}

// RegenerateResult is the outcome of recomputing a product's variants.
type RegenerateResult struct {
	Variants  []ProductVariant `json:"variants"`
	Removed   int              `json:"removed"`
	Preserved int              `json:"preserved"`
}

// Regenerate recomputes variants from groups and carries stock, price override
// and id over from old variants sharing the same canonical key. Old variants
// whose key no longer exists (or that duplicate a key already carried over)
// are dropped and counted in Removed. The caller
// must swap the whole list in one step.
func Regenerate(groups []OptionGroup, old []ProductVariant) RegenerateResult {
	index := NewVariantIndex(old)
	combos := GenerateCombinations(groups)

	result := RegenerateResult{Variants: make([]ProductVariant, 0, len(combos))}
	for _, combo := range combos {
		if prior, ok := index.Lookup(CanonicalKey(combo)); ok {
			result.Preserved++
			result.Variants = append(result.Variants, ProductVariant{
				ID:            prior.ID,
				Options:       combo,
				Stock:         prior.Stock,
				PriceOverride: cloneDecimal(prior.PriceOverride),
			})
			continue
		}
		result.Variants = append(result.Variants, ProductVariant{
			ID:      newVariantID(),
			Options: combo,
		})
	}

	result.Removed = len(old) - result.Preserved
	return result
}

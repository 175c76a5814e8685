package product

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

const reservedChars = "must not contain ':' or '|'"

// ValidateProduct checks the authored product before it is stored. Every
// violation is reported at once with a per-field detail.
func ValidateProduct(p catalog.Product) error {
	details := map[string]string{}
	var errs error
	fail := func(field, msg string) {
		details[field] = msg
		errs = multierr.Append(errs, fmt.Errorf("%s %s", field, msg))
	}

	if strings.TrimSpace(p.ID) == "" {
		fail("id", "is required")
	}
	if strings.TrimSpace(p.TenantID) == "" {
		fail("tenant_id", "is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		fail("name", "is required")
	}
	if !p.Type.IsValid() {
		fail("type", "is invalid")
	}
	if p.BasePrice.IsNegative() {
		fail("base_price", "must not be negative")
	}

	groupIDs := map[string]struct{}{}
	for i, group := range p.OptionGroups {
		prefix := fmt.Sprintf("option_groups[%d]", i)
		if group.ID == "" {
			fail(prefix+".id", "is required")
		} else if !catalog.ValidKeyPart(group.ID) {
			fail(prefix+".id", reservedChars)
		} else if _, dup := groupIDs[group.ID]; dup {
			fail(prefix+".id", "is duplicated")
		}
		groupIDs[group.ID] = struct{}{}

		if !group.Type.IsValid() {
			fail(prefix+".type", "is invalid")
		}
		if !group.SelectionType.IsValid() {
			fail(prefix+".selection_type", "is invalid")
		}
		if group.MinSelected < 0 || group.MaxSelected < 0 {
			fail(prefix+".min_selected", "must not be negative")
		} else if group.MaxSelected > 0 && group.MinSelected > group.MaxSelected {
			fail(prefix+".max_selected", "must not be below min_selected")
		}
		if len(group.Items) == 0 && (group.Required || group.MinSelected > 0) {
			fail(prefix+".items", "are required when the group is required")
		}

		itemIDs := map[string]struct{}{}
		for j, item := range group.Items {
			field := fmt.Sprintf("%s.items[%d]", prefix, j)
			if item.ID == "" {
				fail(field+".id", "is required")
			} else if !catalog.ValidKeyPart(item.ID) {
				fail(field+".id", reservedChars)
			} else if _, dup := itemIDs[item.ID]; dup {
				fail(field+".id", "is duplicated")
			}
			itemIDs[item.ID] = struct{}{}
			if !item.Placement.IsValid() {
				fail(field+".placement", "is invalid")
			}
			if item.Stock != nil && *item.Stock < 0 {
				fail(field+".stock", "must not be negative")
			}
		}
	}

	nonEmpty := catalog.NonEmptyGroups(p.OptionGroups)
	if len(p.Variants) > 0 && len(nonEmpty) == 0 {
		fail("variants", "require at least one option group with items")
	}
	keys := map[string]struct{}{}
	for i, variant := range p.Variants {
		prefix := fmt.Sprintf("variants[%d]", i)
		if variant.Stock < 0 {
			fail(prefix+".stock", "must not be negative")
		}
		if variant.PriceOverride != nil && variant.PriceOverride.IsNegative() {
			fail(prefix+".price_override", "must not be negative")
		}
		if len(nonEmpty) == 0 {
			continue
		}
		if msg := variantPairsIssue(p, variant, len(nonEmpty)); msg != "" {
			fail(prefix+".options", msg)
			continue
		}
		key := variant.Key()
		if _, dup := keys[key]; dup {
			fail(prefix+".options", "duplicate another variant")
		}
		keys[key] = struct{}{}
	}

	if errs == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid product").WithDetails(details)
}

// variantPairsIssue checks that the variant names exactly one existing item
// for every group that has items.
func variantPairsIssue(p catalog.Product, variant catalog.ProductVariant, groups int) string {
	if len(variant.Options) != groups {
		return fmt.Sprintf("must name one option for each of the %d groups with items", groups)
	}
	seen := make(map[string]struct{}, len(variant.Options))
	for _, pair := range variant.Options {
		if _, dup := seen[pair.GroupID]; dup {
			return fmt.Sprintf("repeat group %q", pair.GroupID)
		}
		seen[pair.GroupID] = struct{}{}

		group, ok := p.Group(pair.GroupID)
		if !ok || len(group.Items) == 0 {
			return fmt.Sprintf("reference unknown group %q", pair.GroupID)
		}
		if _, ok := group.Item(pair.OptionID); !ok {
			return fmt.Sprintf("reference unknown item %q in group %q", pair.OptionID, pair.GroupID)
		}
	}
	return ""
}

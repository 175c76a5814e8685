package catalog

import (
	"sort"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

// GroupSelection is the list of item ids a shopper picked in one group. Addon
// groups also carry the placement of each picked item.
type GroupSelection struct {
	GroupID    string                     `json:"group_id"`
	ItemIDs    []string                   `json:"item_ids"`
	Placements map[string]enums.Placement `json:"placements,omitempty"`
}

// GroupIssue reports an unsatisfied group.
type GroupIssue struct {
	GroupID string               `json:"group_id"`
	Issue   enums.SelectionIssue `json:"issue"`
}

// ValidationState is the outcome of checking a selection against a product's
// group policies. It is returned as data, never as an error.
type ValidationState struct {
	Issues []GroupIssue `json:"issues,omitempty"`
}

// Valid reports whether every group is satisfied.
func (v ValidationState) Valid() bool {
	return len(v.Issues) == 0
}

// FirstIssue returns the first unsatisfied group in product order.
func (v ValidationState) FirstIssue() (GroupIssue, bool) {
	if len(v.Issues) == 0 {
		return GroupIssue{}, false
	}
	return v.Issues[0], true
}

// ValidateSelection checks required/min/max policies per group in product
// order. Groups handled by the addon placement store are not bounded by
// MaxSelected.
func ValidateSelection(product Product, selections []GroupSelection) ValidationState {
	picked := make(map[string][]string, len(selections))
	for _, sel := range selections {
		picked[sel.GroupID] = append(picked[sel.GroupID], sel.ItemIDs...)
	}

	var state ValidationState
	known := make(map[string]struct{}, len(product.OptionGroups))
	for _, group := range product.OptionGroups {
		known[group.ID] = struct{}{}
		if issue, ok := checkGroup(product, group, dedupe(picked[group.ID])); ok {
			state.Issues = append(state.Issues, GroupIssue{GroupID: group.ID, Issue: issue})
		}
	}

	var unknown []string
	for groupID := range picked {
		if _, ok := known[groupID]; !ok {
			unknown = append(unknown, groupID)
		}
	}
	sort.Strings(unknown)
	for _, groupID := range unknown {
		state.Issues = append(state.Issues, GroupIssue{GroupID: groupID, Issue: enums.SelectionIssueUnknownOption})
	}
	return state
}

func checkGroup(product Product, group OptionGroup, itemIDs []string) (enums.SelectionIssue, bool) {
	for _, itemID := range itemIDs {
		item, ok := group.Item(itemID)
		if !ok || !item.Enabled {
			return enums.SelectionIssueUnknownOption, true
		}
	}

	count := len(itemIDs)
	if count == 0 {
		// An item-less group can never be satisfied, so it never blocks.
		if len(group.Items) == 0 {
			return "", false
		}
		if group.Required || group.MinSelected > 0 {
			return enums.SelectionIssueMissingRequired, true
		}
		return "", false
	}

	if group.SelectionType == enums.SelectionTypeSingle && !product.UsesAddonPlacement(group) {
		if count > 1 {
			return enums.SelectionIssueTooMany, true
		}
		return "", false
	}

	if group.MinSelected > 0 && count < group.MinSelected {
		return enums.SelectionIssueTooFew, true
	}
	if !product.UsesAddonPlacement(group) && group.MaxSelected > 0 && count > group.MaxSelected {
		return enums.SelectionIssueTooMany, true
	}
	return "", false
}

// SingleSelection reduces selections to one option id per group, for variant
// matching. Addon groups and groups with other than one pick are skipped.
func SingleSelection(product Product, selections []GroupSelection) map[string]string {
	out := make(map[string]string, len(selections))
	for _, sel := range selections {
		group, ok := product.Group(sel.GroupID)
		if !ok || product.UsesAddonPlacement(group) {
			continue
		}
		ids := dedupe(sel.ItemIDs)
		if len(ids) != 1 {
			continue
		}
		out[sel.GroupID] = ids[0]
	}
	return out
}

// DefaultSelections returns the items flagged DefaultSelected per group.
func DefaultSelections(product Product) []GroupSelection {
	var out []GroupSelection
	for _, group := range product.OptionGroups {
		var ids []string
		for _, item := range group.Items {
			if item.Enabled && item.DefaultSelected {
				ids = append(ids, item.ID)
			}
		}
		if len(ids) > 0 {
			out = append(out, GroupSelection{GroupID: group.ID, ItemIDs: ids})
		}
	}
	return out
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package addons

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

const keySeparator = "::"

// Entry is one selected addon.
type Entry struct {
	GroupID    string          `json:"group_id"`
	OptionID   string          `json:"option_id"`
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Placement  enums.Placement `json:"placement"`
}

// Key returns the flat store key of an addon.
func Key(groupID, itemID string) string {
	return groupID + keySeparator + itemID
}

// SplitKey reverses Key.
func SplitKey(key string) (groupID, itemID string, ok bool) {
	groupID, itemID, ok = strings.Cut(key, keySeparator)
	return groupID, itemID, ok && groupID != "" && itemID != ""
}

// Selection is the addon state of one product view: a flat map keyed by
// "groupId::itemId". Every mutation touches exactly one key, so the order of
// calls never affects unrelated entries. A Selection is not safe for
// concurrent use.
type Selection struct {
	product catalog.Product
	entries map[string]Entry
}

// NewSelection returns an empty selection for product.
func NewSelection(product catalog.Product) *Selection {
	return &Selection{product: product, entries: map[string]Entry{}}
}

// Restore rebuilds a selection from stored entries, dropping entries that no
// longer resolve to an enabled item and forcing WHOLE where halves are not
// allowed.
func Restore(product catalog.Product, entries []Entry) *Selection {
	sel := NewSelection(product)
	for _, entry := range entries {
		group, item, err := sel.lookup(entry.GroupID, entry.OptionID)
		if err != nil {
			continue
		}
		restored := newEntry(group, item)
		if entry.Placement.IsValid() && group.ItemHalfPlaceable(item.ID) {
			restored.Placement = entry.Placement
		}
		sel.entries[Key(group.ID, item.ID)] = restored
	}
	return sel
}

// Select applies a shopper click: half-capable groups ensure the item is
// present, other groups toggle membership. The returned bool reports whether
// the item is selected afterwards.
func (s *Selection) Select(groupID, itemID string) (bool, error) {
	group, _, err := s.lookup(groupID, itemID)
	if err != nil {
		return false, err
	}
	if group.HalfCapable() {
		if _, err := s.Ensure(groupID, itemID); err != nil {
			return false, err
		}
		return true, nil
	}
	return s.Toggle(groupID, itemID)
}

// Toggle flips plain membership. Toggling is not bounded by the group's
// MaxSelected.
func (s *Selection) Toggle(groupID, itemID string) (bool, error) {
	group, item, err := s.lookup(groupID, itemID)
	if err != nil {
		return false, err
	}
	key := Key(groupID, itemID)
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		return false, nil
	}
	s.entries[key] = newEntry(group, item)
	return true, nil
}

// Ensure inserts the item with WHOLE placement unless it is already present;
// an existing entry is returned untouched.
func (s *Selection) Ensure(groupID, itemID string) (Entry, error) {
	group, item, err := s.lookup(groupID, itemID)
	if err != nil {
		return Entry{}, err
	}
	key := Key(groupID, itemID)
	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}
	entry := newEntry(group, item)
	s.entries[key] = entry
	return entry, nil
}

// SetPlacement updates only the placement field of one present entry.
func (s *Selection) SetPlacement(groupID, itemID string, placement enums.Placement) (Entry, error) {
	if !placement.IsValid() {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid placement")
	}
	group, _, err := s.lookup(groupID, itemID)
	if err != nil {
		return Entry{}, err
	}
	key := Key(groupID, itemID)
	entry, ok := s.entries[key]
	if !ok {
		return Entry{}, pkgerrors.New(pkgerrors.CodeNotFound, "addon not selected")
	}
	if placement != enums.PlacementWhole && !group.ItemHalfPlaceable(itemID) {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "addon cannot be placed on a half")
	}
	entry.Placement = placement
	s.entries[key] = entry
	return entry, nil
}

// Remove deletes the item's own entry and reports whether it was present.
func (s *Selection) Remove(groupID, itemID string) bool {
	key := Key(groupID, itemID)
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Get returns the entry for one addon.
func (s *Selection) Get(groupID, itemID string) (Entry, bool) {
	entry, ok := s.entries[Key(groupID, itemID)]
	return entry, ok
}

// Len returns the number of selected addons.
func (s *Selection) Len() int {
	return len(s.entries)
}

// Entries lists the selected addons in product group order, then item order.
func (s *Selection) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	groupRank, itemRank := s.ranks()
	sort.Slice(out, func(i, j int) bool {
		gi, gj := groupRank[out[i].GroupID], groupRank[out[j].GroupID]
		if gi != gj {
			return gi < gj
		}
		return itemRank[Key(out[i].GroupID, out[i].OptionID)] < itemRank[Key(out[j].GroupID, out[j].OptionID)]
	})
	return out
}

// SelectedOptions groups the flat map back into one cart entry per group,
// listing item ids and their placements.
func (s *Selection) SelectedOptions() []catalog.GroupSelection {
	var out []catalog.GroupSelection
	byGroup := map[string]int{}
	for _, entry := range s.Entries() {
		idx, ok := byGroup[entry.GroupID]
		if !ok {
			idx = len(out)
			byGroup[entry.GroupID] = idx
			out = append(out, catalog.GroupSelection{
				GroupID:    entry.GroupID,
				Placements: map[string]enums.Placement{},
			})
		}
		out[idx].ItemIDs = append(out[idx].ItemIDs, entry.OptionID)
		out[idx].Placements[entry.OptionID] = entry.Placement
	}
	return out
}

// Total sums the price deltas of every selected addon.
func (s *Selection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range s.entries {
		total = total.Add(entry.PriceDelta)
	}
	return total
}

func (s *Selection) lookup(groupID, itemID string) (catalog.OptionGroup, catalog.OptionItem, error) {
	group, ok := s.product.Group(groupID)
	if !ok {
		return catalog.OptionGroup{}, catalog.OptionItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "option group not found")
	}
	item, ok := group.Item(itemID)
	if !ok || !item.Enabled {
		return catalog.OptionGroup{}, catalog.OptionItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "option item not found")
	}
	return group, item, nil
}

func (s *Selection) ranks() (map[string]int, map[string]int) {
	groupRank := make(map[string]int, len(s.product.OptionGroups))
	itemRank := map[string]int{}
	for g, group := range s.product.OptionGroups {
		groupRank[group.ID] = g
		for i, item := range group.Items {
			itemRank[Key(group.ID, item.ID)] = i
		}
	}
	return groupRank, itemRank
}

func newEntry(group catalog.OptionGroup, item catalog.OptionItem) Entry {
	return Entry{
		GroupID:    group.ID,
		OptionID:   item.ID,
		Label:      item.Name,
		PriceDelta: item.Delta(),
		Placement:  enums.PlacementWhole,
	}
}

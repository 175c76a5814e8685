package addons

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

func delta(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func pizza() catalog.Product {
	return catalog.Product{
		ID:        "margherita",
		Type:      enums.ProductTypePizza,
		BasePrice: decimal.NewFromInt(30),
		OptionGroups: []catalog.OptionGroup{
			{
				ID:            "size",
				SelectionType: enums.SelectionTypeSingle,
				Required:      true,
				Items: []catalog.OptionItem{
					{ID: "M", Name: "Medium", Enabled: true},
					{ID: "L", Name: "Large", Enabled: true, PriceDelta: delta("5")},
				},
			},
			{
				ID:                 "toppings",
				SelectionType:      enums.SelectionTypeMulti,
				MaxSelected:        1,
				AllowHalfPlacement: true,
				Items: []catalog.OptionItem{
					{ID: "olive", Name: "Olive", Enabled: true, PriceDelta: delta("2")},
					{ID: "ham", Name: "Ham", Enabled: true, PriceDelta: delta("3.5")},
					{ID: "off", Name: "Off", Enabled: false},
				},
			},
			{
				ID:            "sauces",
				SelectionType: enums.SelectionTypeMulti,
				MaxSelected:   1,
				Items: []catalog.OptionItem{
					{ID: "bbq", Name: "BBQ", Enabled: true, PriceDelta: delta("1")},
					{ID: "garlic", Name: "Garlic", Enabled: true, Placement: enums.ItemPlacementHalf},
					{ID: "ranch", Name: "Ranch", Enabled: true},
				},
			},
			{
				ID:            "drinks",
				SelectionType: enums.SelectionTypeMulti,
				MaxSelected:   1,
				Items: []catalog.OptionItem{
					{ID: "cola", Name: "Cola", Enabled: true},
					{ID: "water", Name: "Water", Enabled: true},
				},
			},
		},
	}
}

func TestSetPlacementLeavesOtherToppingsUntouched(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	_, err := sel.Ensure("toppings", "olive")
	require.NoError(t, err)
	_, err = sel.Ensure("toppings", "ham")
	require.NoError(t, err)

	before, ok := sel.Get("toppings", "ham")
	require.True(t, ok)

	_, err = sel.SetPlacement("toppings", "olive", enums.PlacementLeft)
	require.NoError(t, err)

	after, ok := sel.Get("toppings", "ham")
	require.True(t, ok, "second topping must survive a placement change on the first")
	assert.Equal(t, before, after)

	olive, _ := sel.Get("toppings", "olive")
	assert.Equal(t, enums.PlacementLeft, olive.Placement)
	assert.Equal(t, 2, sel.Len())
}

func TestEnsureNeverOverwrites(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	_, err := sel.Ensure("toppings", "olive")
	require.NoError(t, err)
	_, err = sel.SetPlacement("toppings", "olive", enums.PlacementRight)
	require.NoError(t, err)

	entry, err := sel.Ensure("toppings", "olive")
	require.NoError(t, err)
	assert.Equal(t, enums.PlacementRight, entry.Placement)

	present, err := sel.Select("toppings", "olive")
	require.NoError(t, err)
	assert.True(t, present)
	got, _ := sel.Get("toppings", "olive")
	assert.Equal(t, enums.PlacementRight, got.Placement)
}

func TestToggleIsUnlimitedAndWhole(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	for _, id := range []string{"cola", "water"} {
		present, err := sel.Select("drinks", id)
		require.NoError(t, err)
		assert.True(t, present)
	}
	assert.Equal(t, 2, sel.Len(), "MaxSelected must not cap addon toggles")

	cola, _ := sel.Get("drinks", "cola")
	assert.Equal(t, enums.PlacementWhole, cola.Placement)

	present, err := sel.Select("drinks", "cola")
	require.NoError(t, err)
	assert.False(t, present)
	_, ok := sel.Get("drinks", "water")
	assert.True(t, ok)
}

func TestSetPlacementRejectsWholeOnlyItems(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	_, err := sel.Ensure("sauces", "bbq")
	require.NoError(t, err)
	_, err = sel.Ensure("sauces", "garlic")
	require.NoError(t, err)

	_, err = sel.SetPlacement("sauces", "bbq", enums.PlacementLeft)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	entry, err := sel.SetPlacement("sauces", "garlic", enums.PlacementLeft)
	require.NoError(t, err)
	assert.Equal(t, enums.PlacementLeft, entry.Placement)

	_, err = sel.SetPlacement("sauces", "ranch", enums.PlacementWhole)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = sel.SetPlacement("sauces", "garlic", enums.Placement("TOP"))
	require.Error(t, err)
}

func TestSelectRejectsUnknownOrDisabledItems(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	for _, tc := range [][2]string{{"toppings", "off"}, {"toppings", "anchovy"}, {"nope", "olive"}} {
		if _, err := sel.Select(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error selecting %v", tc)
		}
	}
	if sel.Len() != 0 {
		t.Fatalf("expected no entries, got %d", sel.Len())
	}
}

func TestRemoveDeletesOnlyItsEntry(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	_, _ = sel.Ensure("toppings", "olive")
	_, _ = sel.Ensure("toppings", "ham")

	if !sel.Remove("toppings", "olive") {
		t.Fatal("expected olive removal")
	}
	if sel.Remove("toppings", "olive") {
		t.Fatal("second removal should report absent")
	}
	if _, ok := sel.Get("toppings", "ham"); !ok {
		t.Fatal("ham should still be selected")
	}
}

func TestSelectedOptionsGroupsByGroupInProductOrder(t *testing.T) {
	t.Parallel()

	sel := NewSelection(pizza())
	_, _ = sel.Select("drinks", "water")
	_, _ = sel.Select("toppings", "ham")
	_, _ = sel.Select("toppings", "olive")
	_, _ = sel.SetPlacement("toppings", "ham", enums.PlacementRight)

	got := sel.SelectedOptions()
	require.Len(t, got, 2)
	assert.Equal(t, "toppings", got[0].GroupID)
	assert.Equal(t, []string{"olive", "ham"}, got[0].ItemIDs)
	assert.Equal(t, map[string]enums.Placement{"olive": enums.PlacementWhole, "ham": enums.PlacementRight}, got[0].Placements)
	assert.Equal(t, "drinks", got[1].GroupID)
	assert.Equal(t, []string{"water"}, got[1].ItemIDs)

	assert.True(t, sel.Total().Equal(decimal.RequireFromString("5.5")))
}

func TestRestoreSanitizesEntries(t *testing.T) {
	t.Parallel()

	sel := Restore(pizza(), []Entry{
		{GroupID: "toppings", OptionID: "olive", Placement: enums.PlacementLeft},
		{GroupID: "sauces", OptionID: "bbq", Placement: enums.PlacementRight},
		{GroupID: "toppings", OptionID: "gone", Placement: enums.PlacementWhole},
	})

	require.Equal(t, 2, sel.Len())
	olive, _ := sel.Get("toppings", "olive")
	assert.Equal(t, enums.PlacementLeft, olive.Placement)
	assert.True(t, olive.PriceDelta.Equal(decimal.NewFromInt(2)))
	bbq, _ := sel.Get("sauces", "bbq")
	assert.Equal(t, enums.PlacementWhole, bbq.Placement)
}

func TestSplitKey(t *testing.T) {
	t.Parallel()

	groupID, itemID, ok := SplitKey(Key("toppings", "olive"))
	if !ok || groupID != "toppings" || itemID != "olive" {
		t.Fatalf("unexpected split %q %q %v", groupID, itemID, ok)
	}
	if _, _, ok := SplitKey("toppings"); ok {
		t.Fatal("expected malformed key to fail")
	}
}

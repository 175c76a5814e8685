package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/addons"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

type memoryHashes struct {
	data map[string]map[string]string
}

func newMemoryHashes() *memoryHashes {
	return &memoryHashes{data: map[string]map[string]string{}}
}

func (m *memoryHashes) HSet(ctx context.Context, key, field, value string) error {
	if m.data[key] == nil {
		m.data[key] = map[string]string{}
	}
	m.data[key][field] = value
	return nil
}

func (m *memoryHashes) HDel(ctx context.Context, key string, fields ...string) error {
	for _, field := range fields {
		delete(m.data[key], field)
	}
	return nil
}

func (m *memoryHashes) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.data[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memoryHashes) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func (m *memoryHashes) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryHashes) AddonSessionKey(productID, sessionID string) string {
	return "test:addons:" + productID + ":" + sessionID
}

type productLoaderFunc func(ctx context.Context, tenantID, productID string) (*catalog.Product, error)

func (f productLoaderFunc) GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
	return f(ctx, tenantID, productID)
}

func pizzaProduct() catalog.Product {
	delta := decimal.RequireFromString("1.50")
	return catalog.Product{
		ID:        "pizza",
		TenantID:  testTenant,
		Name:      "Pizza",
		Type:      enums.ProductTypePizza,
		BasePrice: decimal.NewFromInt(12),
		OptionGroups: []catalog.OptionGroup{
			{
				ID:                 "toppings",
				Name:               "Toppings",
				Type:               enums.OptionGroupTypeCustom,
				SelectionType:      enums.SelectionTypeMulti,
				AllowHalfPlacement: true,
				Items: []catalog.OptionItem{
					{ID: "olive", Name: "Olive", PriceDelta: &delta, Enabled: true},
					{ID: "onion", Name: "Onion", PriceDelta: &delta, Enabled: true},
				},
			},
			{
				ID:            "sauce",
				Name:          "Sauce",
				Type:          enums.OptionGroupTypeCustom,
				SelectionType: enums.SelectionTypeMulti,
				Items: []catalog.OptionItem{
					{ID: "garlic", Name: "Garlic", Enabled: true},
				},
			},
		},
	}
}

func newAddonFixture(t *testing.T) (ProductLoader, *addons.SessionStore) {
	t.Helper()
	store, err := addons.NewSessionStore(newMemoryHashes(), time.Hour)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	loader := productLoaderFunc(func(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
		if tenantID != testTenant || productID != "pizza" {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		p := pizzaProduct()
		return &p, nil
	})
	return loader, store
}

func itemParams(groupID, itemID string) map[string]string {
	return map[string]string{"productId": "pizza", "sessionId": "s-1", "groupId": groupID, "itemId": itemID}
}

func TestAddonSessionFlow(t *testing.T) {
	loader, store := newAddonFixture(t)
	logg := testLogger()

	rec := serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("toppings", "olive")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp addonSessionResponse
	decodeData(t, rec, &resp)
	if resp.Selected == nil || !*resp.Selected || len(resp.Entries) != 1 {
		t.Fatalf("expected olive selected, got %+v", resp)
	}

	rec = serve(SetAddonPlacement(loader, store, logg), newRequest(http.MethodPatch, "/", `{"placement":"left"}`, itemParams("toppings", "olive")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("toppings", "onion")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = serve(GetAddonSession(loader, store, logg), newRequest(http.MethodGet, "/", "", map[string]string{"productId": "pizza", "sessionId": "s-1"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp = addonSessionResponse{}
	decodeData(t, rec, &resp)
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", resp.Entries)
	}
	if resp.Entries[0].OptionID != "olive" || resp.Entries[0].Placement != enums.PlacementLeft {
		t.Fatalf("placement lost after later select: %+v", resp.Entries[0])
	}
	if resp.Entries[1].Placement != enums.PlacementWhole {
		t.Fatalf("expected onion WHOLE, got %s", resp.Entries[1].Placement)
	}
	if !resp.Total.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected total 3, got %s", resp.Total)
	}

	rec = serve(RemoveAddon(loader, store, logg), newRequest(http.MethodDelete, "/", "", itemParams("toppings", "olive")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp = addonSessionResponse{}
	decodeData(t, rec, &resp)
	if len(resp.Entries) != 1 || resp.Entries[0].OptionID != "onion" {
		t.Fatalf("expected only onion left, got %+v", resp.Entries)
	}

	rec = serve(ClearAddonSession(loader, store, logg), newRequest(http.MethodDelete, "/", "", map[string]string{"productId": "pizza", "sessionId": "s-1"}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = serve(GetAddonSession(loader, store, logg), newRequest(http.MethodGet, "/", "", map[string]string{"productId": "pizza", "sessionId": "s-1"}))
	resp = addonSessionResponse{}
	decodeData(t, rec, &resp)
	if len(resp.Entries) != 0 {
		t.Fatalf("expected cleared session, got %+v", resp.Entries)
	}
}

func TestSelectAddonTogglesPlainGroups(t *testing.T) {
	loader, store := newAddonFixture(t)
	logg := testLogger()

	serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("sauce", "garlic")))
	rec := serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("sauce", "garlic")))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp addonSessionResponse
	decodeData(t, rec, &resp)
	if resp.Selected == nil || *resp.Selected || len(resp.Entries) != 0 {
		t.Fatalf("expected garlic toggled off, got %+v", resp)
	}
}

func TestAddonErrors(t *testing.T) {
	loader, store := newAddonFixture(t)
	logg := testLogger()

	t.Run("unknown product", func(t *testing.T) {
		params := itemParams("toppings", "olive")
		params["productId"] = "calzone"
		rec := serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", params))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		rec := serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("toppings", "anchovy")))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("half placement on whole-only group", func(t *testing.T) {
		serve(SelectAddon(loader, store, logg), newRequest(http.MethodPost, "/", "", itemParams("sauce", "garlic")))
		rec := serve(SetAddonPlacement(loader, store, logg), newRequest(http.MethodPatch, "/", `{"placement":"RIGHT"}`, itemParams("sauce", "garlic")))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid placement", func(t *testing.T) {
		rec := serve(SetAddonPlacement(loader, store, logg), newRequest(http.MethodPatch, "/", `{"placement":"TOP"}`, itemParams("toppings", "olive")))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("placement on unselected item", func(t *testing.T) {
		rec := serve(SetAddonPlacement(loader, store, logg), newRequest(http.MethodPatch, "/", `{"placement":"LEFT"}`, itemParams("toppings", "onion")))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

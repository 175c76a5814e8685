package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/campaigns"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/internal/pricing"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

type stubCampaignLister struct {
	list []campaigns.Campaign
	err  error
}

func (s stubCampaignLister) ListByTenant(ctx context.Context, tenantID string) ([]campaigns.Campaign, error) {
	return s.list, s.err
}

type stubProductLoader map[string]catalog.Product

func (s stubProductLoader) GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
	p, ok := s[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func quoteShirt() catalog.Product {
	delta := decimal.NewFromInt(5)
	return catalog.Product{
		ID:         "shirt",
		TenantID:   testTenant,
		Name:       "Shirt",
		CategoryID: "apparel",
		BasePrice:  decimal.NewFromInt(40),
		OptionGroups: []catalog.OptionGroup{{
			ID:            "size",
			Name:          "Size",
			Type:          enums.OptionGroupTypeSize,
			SelectionType: enums.SelectionTypeSingle,
			Required:      true,
			MinSelected:   1,
			MaxSelected:   1,
			Items: []catalog.OptionItem{
				{ID: "m", Name: "M", Enabled: true},
				{ID: "l", Name: "L", PriceDelta: &delta, Enabled: true},
			},
		}},
	}
}

func newQuoteService(t *testing.T, lister stubCampaignLister) pricing.Service {
	t.Helper()
	loader := stubProductLoader{"shirt": quoteShirt()}
	svc, err := pricing.NewService(lister, loader, testLogger(), nil, func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("new pricing service: %v", err)
	}
	return svc
}

func TestQuoteCart(t *testing.T) {
	lister := stubCampaignLister{list: []campaigns.Campaign{{
		ID:        "spring",
		TenantID:  testTenant,
		Name:      "spring",
		Status:    enums.CampaignStatusActive,
		Type:      enums.CampaignTypePercent,
		Value:     decimal.NewFromInt(10),
		AppliesTo: enums.CampaignScopeAll,
	}}}

	body := `{"items":[{"product_id":"shirt","quantity":2,
		"selected_options":[{"group_id":"size","item_ids":["l"]}]}]}`

	rec := serve(QuoteCart(newQuoteService(t, lister), testLogger()), newRequest(http.MethodPost, "/", body, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cart pricing.Cart
	decodeData(t, rec, &cart)
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Lines))
	}
	line := cart.Lines[0]
	if !line.UnitPrice.Equal(decimal.NewFromInt(45)) || !line.Subtotal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("unexpected line prices %+v", line)
	}
	if !cart.DiscountTotal.Equal(decimal.NewFromInt(9)) || !cart.Total.Equal(decimal.NewFromInt(81)) {
		t.Fatalf("unexpected totals discount=%s total=%s", cart.DiscountTotal, cart.Total)
	}
}

func TestQuoteCartRejectsClientPrices(t *testing.T) {
	cases := map[string]string{
		"unit price override": `{"items":[{"product_id":"shirt","quantity":1,"unit_price_override":"0.01",
			"selected_options":[{"group_id":"size","item_ids":["m"]}]}]}`,
		"base price": `{"items":[{"product_id":"shirt","quantity":1,"base_price":"1",
			"selected_options":[{"group_id":"size","item_ids":["m"]}]}]}`,
		"option groups": `{"items":[{"product_id":"shirt","quantity":1,"option_groups":[],
			"selected_options":[{"group_id":"size","item_ids":["m"]}]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(QuoteCart(newQuoteService(t, stubCampaignLister{}), testLogger()), newRequest(http.MethodPost, "/", body, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestQuoteCartUnknownProduct(t *testing.T) {
	body := `{"items":[{"product_id":"ghost","quantity":1}]}`
	rec := serve(QuoteCart(newQuoteService(t, stubCampaignLister{}), testLogger()), newRequest(http.MethodPost, "/", body, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQuoteCartRejectsBadQuantity(t *testing.T) {
	body := `{"items":[{"product_id":"shirt","quantity":0}]}`
	rec := serve(QuoteCart(newQuoteService(t, stubCampaignLister{}), testLogger()), newRequest(http.MethodPost, "/", body, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuoteCartDependencyFailure(t *testing.T) {
	body := `{"items":[{"product_id":"shirt","quantity":1,"selected_options":[{"group_id":"size","item_ids":["m"]}]}]}`
	rec := serve(QuoteCart(newQuoteService(t, stubCampaignLister{err: errors.New("db down")}), testLogger()), newRequest(http.MethodPost, "/", body, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

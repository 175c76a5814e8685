package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	product "github.com/angelmondragon/storefront-engine/internal/products"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

type stubProductService struct {
	product     *catalog.Product
	err         error
	saved       *catalog.Product
	resolved    int
	previewed   bool
	committed   *int
	commitErr   error
	tenantSeen  string
	productSeen string
}

func (s *stubProductService) GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
	s.tenantSeen, s.productSeen = tenantID, productID
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubProductService) SaveProduct(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = &p
	return &p, nil
}

func (s *stubProductService) PreviewRegenerate(ctx context.Context, tenantID, productID string) (*product.RegeneratePreview, error) {
	s.previewed = true
	return &product.RegeneratePreview{Removed: 2, Preserved: 4}, nil
}

func (s *stubProductService) CommitRegenerate(ctx context.Context, tenantID, productID string, expectedRemoved int) (*product.RegeneratePreview, error) {
	s.committed = &expectedRemoved
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	return &product.RegeneratePreview{Removed: expectedRemoved, Preserved: 4}, nil
}

func (s *stubProductService) Resolve(ctx context.Context, tenantID, productID string, selections []catalog.GroupSelection, quantity int) (*product.Resolution, error) {
	s.resolved = quantity
	stock := 3
	return &product.Resolution{UnitPrice: decimal.RequireFromString("45"), Stock: &stock, Available: quantity <= stock}, nil
}

func (s *stubProductService) OptionAvailability(ctx context.Context, tenantID, productID string) (map[string]map[string]catalog.StockAvailability, error) {
	return map[string]map[string]catalog.StockAvailability{
		"size": {"s": {Total: 0}, "m": {Total: 4}},
	}, nil
}

func TestGetProduct(t *testing.T) {
	params := map[string]string{"productId": "shirt"}

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{product: &catalog.Product{ID: "shirt", TenantID: testTenant, Name: "Shirt"}}
		rec := serve(GetProduct(stub, testLogger()), newRequest(http.MethodGet, "/", "", params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.tenantSeen != testTenant || stub.productSeen != "shirt" {
			t.Fatalf("unexpected scope %s/%s", stub.tenantSeen, stub.productSeen)
		}
		var got catalog.Product
		decodeData(t, rec, &got)
		if got.Name != "Shirt" {
			t.Fatalf("unexpected product %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		rec := serve(GetProduct(stub, testLogger()), newRequest(http.MethodGet, "/", "", params))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("missing product id", func(t *testing.T) {
		rec := serve(GetProduct(&stubProductService{}, testLogger()), newRequest(http.MethodGet, "/", "", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPutProduct(t *testing.T) {
	params := map[string]string{"productId": "pizza"}

	t.Run("scopes to path", func(t *testing.T) {
		stub := &stubProductService{}
		body := `{"name":" Pizza ","type":"PIZZA","base_price":"12.50","option_groups":[{"id":"toppings","name":"Toppings","type":"CUSTOM","selection_type":"multi","allow_half_placement":true,"items":[{"id":"olive","name":"Olive","enabled":true}]}]}`
		rec := serve(PutProduct(stub, testLogger()), newRequest(http.MethodPut, "/", body, params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.saved == nil {
			t.Fatalf("expected SaveProduct to be invoked")
		}
		if stub.saved.ID != "pizza" || stub.saved.TenantID != testTenant {
			t.Fatalf("unexpected scope %s/%s", stub.saved.TenantID, stub.saved.ID)
		}
		if stub.saved.Name != "Pizza" || stub.saved.Type != enums.ProductTypePizza {
			t.Fatalf("unexpected product %+v", stub.saved)
		}
		if !stub.saved.BasePrice.Equal(decimal.RequireFromString("12.5")) {
			t.Fatalf("unexpected base price %s", stub.saved.BasePrice)
		}
		if len(stub.saved.OptionGroups) != 1 || !stub.saved.OptionGroups[0].AllowHalfPlacement {
			t.Fatalf("option groups not carried: %+v", stub.saved.OptionGroups)
		}
	})

	t.Run("defaults to standard type", func(t *testing.T) {
		stub := &stubProductService{}
		rec := serve(PutProduct(stub, testLogger()), newRequest(http.MethodPut, "/", `{"name":"Shirt","base_price":40}`, params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.saved.Type != enums.ProductTypeStandard {
			t.Fatalf("expected STANDARD, got %s", stub.saved.Type)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		rec := serve(PutProduct(&stubProductService{}, testLogger()), newRequest(http.MethodPut, "/", `{"name":"Shirt","type":"BOAT"}`, params))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec := serve(PutProduct(&stubProductService{}, testLogger()), newRequest(http.MethodPut, "/", `{"base_price":"1"}`, params))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeError(t, rec)
		if body.Error.Details["name"] != "is required" {
			t.Fatalf("unexpected details %v", body.Error.Details)
		}
	})

	t.Run("conflict", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeConflict, "product id already in use")}
		rec := serve(PutProduct(stub, testLogger()), newRequest(http.MethodPut, "/", `{"name":"Shirt"}`, params))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestProductAvailability(t *testing.T) {
	rec := serve(ProductAvailability(&stubProductService{}, testLogger()), newRequest(http.MethodGet, "/", "", map[string]string{"productId": "shirt"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]map[string]catalog.StockAvailability
	decodeData(t, rec, &got)
	if got["size"]["m"].Total != 4 || got["size"]["s"].Available() {
		t.Fatalf("unexpected availability %+v", got)
	}
}

func TestResolveSelection(t *testing.T) {
	params := map[string]string{"productId": "shirt"}

	t.Run("resolves", func(t *testing.T) {
		stub := &stubProductService{}
		body := `{"selections":[{"group_id":"size","item_ids":["l"]}],"quantity":2}`
		rec := serve(ResolveSelection(stub, testLogger()), newRequest(http.MethodPost, "/", body, params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.resolved != 2 {
			t.Fatalf("expected quantity 2, got %d", stub.resolved)
		}
		var got product.Resolution
		decodeData(t, rec, &got)
		if !got.Available || !got.UnitPrice.Equal(decimal.RequireFromString("45")) {
			t.Fatalf("unexpected resolution %+v", got)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		rec := serve(ResolveSelection(&stubProductService{}, testLogger()), newRequest(http.MethodPost, "/", `{"selections":[],"quantity":0}`, params))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRegenerateVariants(t *testing.T) {
	params := map[string]string{"productId": "shirt"}

	t.Run("preview by default", func(t *testing.T) {
		stub := &stubProductService{}
		rec := serve(RegenerateVariants(stub, testLogger()), newRequest(http.MethodPost, "/regenerate", "", params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.previewed || stub.committed != nil {
			t.Fatalf("expected preview only")
		}
		var got product.RegeneratePreview
		decodeData(t, rec, &got)
		if got.Removed != 2 || got.Preserved != 4 {
			t.Fatalf("unexpected preview %+v", got)
		}
	})

	t.Run("commit requires expected count", func(t *testing.T) {
		stub := &stubProductService{}
		rec := serve(RegenerateVariants(stub, testLogger()), newRequest(http.MethodPost, "/regenerate?commit=true", "", params))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.committed != nil {
			t.Fatalf("commit should not run")
		}
	})

	t.Run("commit", func(t *testing.T) {
		stub := &stubProductService{}
		rec := serve(RegenerateVariants(stub, testLogger()), newRequest(http.MethodPost, "/regenerate?commit=true&expected_removed=2", "", params))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.committed == nil || *stub.committed != 2 {
			t.Fatalf("expected commit with 2, got %v", stub.committed)
		}
	})

	t.Run("commit conflict exposes new count", func(t *testing.T) {
		stub := &stubProductService{commitErr: pkgerrors.New(pkgerrors.CodeConflict, "removed variant count changed").WithDetails(map[string]any{"removed": 3})}
		rec := serve(RegenerateVariants(stub, testLogger()), newRequest(http.MethodPost, "/regenerate?commit=true&expected_removed=2", "", params))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		body := decodeError(t, rec)
		if body.Error.Details["removed"] != float64(3) {
			t.Fatalf("unexpected details %v", body.Error.Details)
		}
	})
}

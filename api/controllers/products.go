package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/api/responses"
	"github.com/angelmondragon/storefront-engine/api/validators"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	product "github.com/angelmondragon/storefront-engine/internal/products"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
)

const maxRegenerateRemoved = 1_000_000

// GetProduct returns the stored catalog product.
func GetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		p, err := svc.GetProduct(r.Context(), tenantID, ids[0])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, p)
	}
}

// PutProduct creates or replaces a product definition, variants included.
func PutProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload putProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toProduct(tenantID, ids[0])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.SaveProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

type putProductRequest struct {
	Name         string                   `json:"name" validate:"required,max=200"`
	CategoryID   string                   `json:"category_id,omitempty" validate:"max=64"`
	Type         string                   `json:"type,omitempty"`
	BasePrice    decimal.Decimal          `json:"base_price"`
	OptionGroups []catalog.OptionGroup    `json:"option_groups"`
	Variants     []catalog.ProductVariant `json:"variants"`
}

func (p putProductRequest) toProduct(tenantID, productID string) (catalog.Product, error) {
	productType := enums.ProductTypeStandard
	if raw := strings.TrimSpace(p.Type); raw != "" {
		parsed, err := enums.ParseProductType(raw)
		if err != nil {
			return catalog.Product{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
		}
		productType = parsed
	}
	return catalog.Product{
		ID:           productID,
		TenantID:     tenantID,
		CategoryID:   strings.TrimSpace(p.CategoryID),
		Name:         validators.SanitizeString(p.Name, 200),
		Type:         productType,
		BasePrice:    p.BasePrice,
		OptionGroups: p.OptionGroups,
		Variants:     p.Variants,
	}, nil
}

// ProductAvailability returns aggregated stock for every option chip.
func ProductAvailability(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		availability, err := svc.OptionAvailability(r.Context(), tenantID, ids[0])
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, availability)
	}
}

type resolveRequest struct {
	Selections []catalog.GroupSelection `json:"selections"`
	Quantity   int                      `json:"quantity" validate:"gte=1"`
}

// ResolveSelection validates a selection, matches its variant and prices it.
func ResolveSelection(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload resolveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution, err := svc.Resolve(r.Context(), tenantID, ids[0], payload.Selections, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resolution)
	}
}

// RegenerateVariants previews a regeneration by default. With commit=true the
// caller must echo the previewed removed count as expected_removed.
func RegenerateVariants(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		commit, err := validators.ParseQueryBool(r, "commit", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !commit {
			preview, err := svc.PreviewRegenerate(r.Context(), tenantID, ids[0])
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, preview)
			return
		}

		if strings.TrimSpace(r.URL.Query().Get("expected_removed")) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "expected_removed is required when committing").WithDetail("field", "expected_removed"))
			return
		}
		expected, err := validators.ParseQueryInt(r, "expected_removed", 0, 0, maxRegenerateRemoved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CommitRegenerate(r.Context(), tenantID, ids[0], expected)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

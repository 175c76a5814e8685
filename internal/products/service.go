package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/internal/pricing"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
	"github.com/angelmondragon/storefront-engine/pkg/metrics"
)

// Service exposes catalog reads, variant regeneration and selection resolution.
type Service interface {
	GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error)
	SaveProduct(ctx context.Context, product catalog.Product) (*catalog.Product, error)
	PreviewRegenerate(ctx context.Context, tenantID, productID string) (*RegeneratePreview, error)
	CommitRegenerate(ctx context.Context, tenantID, productID string, expectedRemoved int) (*RegeneratePreview, error)
	Resolve(ctx context.Context, tenantID, productID string, selections []catalog.GroupSelection, quantity int) (*Resolution, error)
	OptionAvailability(ctx context.Context, tenantID, productID string) (map[string]map[string]catalog.StockAvailability, error)
}

// RegeneratePreview is the variant list a regeneration would store along with
// how many current variants it drops.
type RegeneratePreview struct {
	Variants  []catalog.ProductVariant `json:"variants"`
	Removed   int                      `json:"removed"`
	Preserved int                      `json:"preserved"`
}

// Resolution is what the product page needs to enable add-to-cart.
type Resolution struct {
	Issues    []catalog.GroupIssue    `json:"issues"`
	Variant   *catalog.ProductVariant `json:"variant,omitempty"`
	UnitPrice decimal.Decimal         `json:"unit_price"`
	Stock     *int                    `json:"stock,omitempty"`
	Available bool                    `json:"available"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics
}

// NewService constructs a product service instance.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger, m *metrics.CatalogMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg, metrics: m}, nil
}

func (s *service) GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
	return s.load(ctx, s.repo, tenantID, productID)
}

func (s *service) SaveProduct(ctx context.Context, product catalog.Product) (*catalog.Product, error) {
	if product.OptionGroups == nil {
		product.OptionGroups = []catalog.OptionGroup{}
	}
	if product.Variants == nil {
		product.Variants = []catalog.ProductVariant{}
	}
	if err := ValidateProduct(product); err != nil {
		return nil, err
	}
	ok, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save product")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product id already in use")
	}
	return &product, nil
}

func (s *service) PreviewRegenerate(ctx context.Context, tenantID, productID string) (*RegeneratePreview, error) {
	product, err := s.load(ctx, s.repo, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return previewOf(catalog.Regenerate(product.OptionGroups, product.Variants)), nil
}

func (s *service) CommitRegenerate(ctx context.Context, tenantID, productID string, expectedRemoved int) (*RegeneratePreview, error) {
	var preview *RegeneratePreview
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := s.load(ctx, repo, tenantID, productID)
		if err != nil {
			return err
		}

		preview = previewOf(catalog.Regenerate(product.OptionGroups, product.Variants))
		if preview.Removed != expectedRemoved {
			return pkgerrors.New(pkgerrors.CodeConflict, "variant removal count changed").
				WithDetails(map[string]any{"expected_removed": expectedRemoved, "removed": preview.Removed})
		}

		ok, err := repo.ReplaceVariants(ctx, tenantID, productID, preview.Variants)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace variants")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			s.metrics.ObserveRegenerate("conflict", 0)
		}
		return nil, err
	}

	s.metrics.ObserveRegenerate("committed", preview.Removed)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"tenant_id":  tenantID,
		"product_id": productID,
		"variants":   len(preview.Variants),
		"removed":    preview.Removed,
		"preserved":  preview.Preserved,
	})
	s.logg.Info(ctx, "product.variants_regenerated")
	return preview, nil
}

func (s *service) Resolve(ctx context.Context, tenantID, productID string, selections []catalog.GroupSelection, quantity int) (*Resolution, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.load(ctx, s.repo, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return resolve(*product, selections, quantity), nil
}

func (s *service) OptionAvailability(ctx context.Context, tenantID, productID string) (map[string]map[string]catalog.StockAvailability, error) {
	product, err := s.load(ctx, s.repo, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return catalog.AvailabilityByOption(*product), nil
}

func (s *service) load(ctx context.Context, repo *Repository, tenantID, productID string) (*catalog.Product, error) {
	product, err := repo.GetProduct(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// resolve validates the selection, matches it to a variant and prices it.
// A product without variants is not stock constrained.
func resolve(product catalog.Product, selections []catalog.GroupSelection, quantity int) *Resolution {
	state := catalog.ValidateSelection(product, selections)
	res := &Resolution{Issues: state.Issues}
	if res.Issues == nil {
		res.Issues = []catalog.GroupIssue{}
	}

	if len(product.Variants) == 0 {
		res.UnitPrice = pricing.UnitPrice(product.BasePrice, nil, selections, product.OptionGroups)
		res.Available = state.Valid()
		return res
	}

	variant, ok := catalog.MatchVariant(product, catalog.SingleSelection(product, selections))
	if !ok {
		res.UnitPrice = pricing.UnitPrice(product.BasePrice, nil, selections, product.OptionGroups)
		return res
	}

	stock := variant.Stock
	res.Variant = &variant
	res.Stock = &stock
	res.UnitPrice = pricing.UnitPrice(product.BasePrice, variant.PriceOverride, selections, product.OptionGroups)
	res.Available = state.Valid() && stock >= quantity
	return res
}

func previewOf(result catalog.RegenerateResult) *RegeneratePreview {
	return &RegeneratePreview{
		Variants:  result.Variants,
		Removed:   result.Removed,
		Preserved: result.Preserved,
	}
}

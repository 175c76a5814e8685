package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/campaigns"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
	"github.com/angelmondragon/storefront-engine/pkg/metrics"
)

// Service quotes carts against the tenant's live campaigns.
type Service interface {
	QuoteCart(ctx context.Context, tenantID string, items []QuoteItem) (Cart, error)
}

// QuoteItem is a shopper's cart line: which product, how many and the chosen
// options. Prices always come from the stored product.
type QuoteItem struct {
	ProductID       string                   `json:"product_id"`
	Quantity        int                      `json:"quantity"`
	SelectedOptions []catalog.GroupSelection `json:"selected_options"`
}

type campaignLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]campaigns.Campaign, error)
}

// productLoader returns typed errors (not-found, dependency); anything
// untyped is treated as a dependency failure.
type productLoader interface {
	GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error)
}

type service struct {
	campaigns campaignLister
	products  productLoader
	logg      *logger.Logger
	metrics   *metrics.PricingMetrics
	now       func() time.Time
	currency  enums.Currency
}

// Option customizes a pricing service.
type Option func(*service)

// WithCurrency sets the currency stamped on every quote.
func WithCurrency(currency enums.Currency) Option {
	return func(s *service) {
		s.currency = currency
	}
}

// NewService builds a pricing service. A nil metrics value disables metrics.
func NewService(list campaignLister, products productLoader, logg *logger.Logger, m *metrics.PricingMetrics, now func() time.Time, opts ...Option) (Service, error) {
	if list == nil {
		return nil, fmt.Errorf("campaign lister required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	svc := &service{campaigns: list, products: products, logg: logg, metrics: m, now: now, currency: enums.CurrencyUSD}
	for _, opt := range opts {
		opt(svc)
	}
	if !svc.currency.IsValid() {
		return nil, fmt.Errorf("unsupported currency %q", svc.currency)
	}
	return svc, nil
}

func (s *service) QuoteCart(ctx context.Context, tenantID string, items []QuoteItem) (Cart, error) {
	if tenantID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if len(items) == 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetail("line", i)
		}
		if strings.TrimSpace(item.ProductID) == "" {
			return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required").
				WithDetail("line", i)
		}
	}

	started := time.Now()
	lines, err := s.cartItems(ctx, tenantID, items)
	if err != nil {
		return Cart{}, err
	}

	list, err := s.campaigns.ListByTenant(ctx, tenantID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaigns")
	}

	cart := PriceCart(lines, list, s.now())
	cart.Currency = s.currency

	s.metrics.IncQuote()
	for _, line := range cart.Lines {
		if line.Campaign != nil {
			s.metrics.IncCampaignApplied(line.Campaign.Type.String())
		}
	}
	s.metrics.ObserveQuoteDuration(time.Since(started))

	ctx = s.logg.WithFields(ctx, map[string]any{
		"tenant_id":      tenantID,
		"currency":       cart.Currency,
		"lines":          len(cart.Lines),
		"subtotal":       cart.Subtotal.StringFixed(2),
		"discount_total": cart.DiscountTotal.StringFixed(2),
		"total":          cart.Total.StringFixed(2),
	})
	s.logg.Info(ctx, "pricing.quote")
	return cart, nil
}

// cartItems loads each distinct product once and turns the shopper's lines
// into priced cart items.
func (s *service) cartItems(ctx context.Context, tenantID string, items []QuoteItem) ([]CartItem, error) {
	loaded := make(map[string]catalog.Product, len(items))
	out := make([]CartItem, 0, len(items))
	for i, item := range items {
		product, ok := loaded[item.ProductID]
		if !ok {
			p, err := s.products.GetProduct(ctx, tenantID, item.ProductID)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil {
					return nil, typed.WithDetail("line", i)
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product").WithDetail("line", i)
			}
			product = *p
			loaded[item.ProductID] = product
		}

		line, err := CartItemFor(product, item.Quantity, item.SelectedOptions)
		if err != nil {
			return nil, pkgerrors.As(err).WithDetail("line", i)
		}
		out = append(out, line)
	}
	return out, nil
}

// CartItemFor builds a cart line from the stored product. The selection must
// satisfy every group policy and, when the product has variants, resolve to
// one; the matched variant's override then replaces the computed unit price.
func CartItemFor(product catalog.Product, quantity int, selections []catalog.GroupSelection) (CartItem, error) {
	state := catalog.ValidateSelection(product, selections)
	if issue, bad := state.FirstIssue(); bad {
		return CartItem{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid option selection").
			WithDetail("group_id", issue.GroupID).
			WithDetail("issue", issue.Issue)
	}

	var override *decimal.Decimal
	if len(product.Variants) > 0 {
		variant, ok := catalog.MatchVariant(product, catalog.SingleSelection(product, selections))
		if !ok {
			return CartItem{}, pkgerrors.New(pkgerrors.CodeValidation, "selection does not match a variant").
				WithDetail("product_id", product.ID)
		}
		override = variant.PriceOverride
	}

	return CartItem{
		ProductID:         product.ID,
		CategoryID:        product.CategoryID,
		Quantity:          quantity,
		BasePrice:         product.BasePrice,
		UnitPriceOverride: override,
		SelectedOptions:   selections,
		OptionGroups:      product.OptionGroups,
	}, nil
}

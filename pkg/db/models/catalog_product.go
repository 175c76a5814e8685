package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	"github.com/angelmondragon/storefront-engine/pkg/types"
)

// CatalogProduct stores the product aggregate; option groups and variants
// live in JSONB columns shaped like the catalog JSON.
type CatalogProduct struct {
	ID           string                                     `gorm:"column:id;primaryKey"`
	TenantID     string                                     `gorm:"column:tenant_id;not null"`
	CategoryID   string                                     `gorm:"column:category_id"`
	Name         string                                     `gorm:"column:name;not null"`
	Type         enums.ProductType                          `gorm:"column:type;not null"`
	BasePrice    decimal.Decimal                            `gorm:"column:base_price;type:numeric(12,2);not null"`
	OptionGroups types.JSONColumn[[]catalog.OptionGroup]    `gorm:"column:option_groups;type:jsonb;not null"`
	Variants     types.JSONColumn[[]catalog.ProductVariant] `gorm:"column:variants;type:jsonb;not null"`
	CreatedAt    time.Time                                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                                  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string { return "products" }

// ToCatalog converts the row into the engine's product aggregate.
func (p CatalogProduct) ToCatalog() catalog.Product {
	return catalog.Product{
		ID:           p.ID,
		TenantID:     p.TenantID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Type:         p.Type,
		BasePrice:    p.BasePrice,
		OptionGroups: p.OptionGroups.Data,
		Variants:     p.Variants.Data,
	}
}

// CatalogProductFrom converts an engine product into a row.
func CatalogProductFrom(product catalog.Product) CatalogProduct {
	return CatalogProduct{
		ID:           product.ID,
		TenantID:     product.TenantID,
		CategoryID:   product.CategoryID,
		Name:         product.Name,
		Type:         product.Type,
		BasePrice:    product.BasePrice,
		OptionGroups: types.NewJSONColumn(product.OptionGroups),
		Variants:     types.NewJSONColumn(product.Variants),
	}
}

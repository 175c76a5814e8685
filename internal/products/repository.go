package product

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/db/models"
	"github.com/angelmondragon/storefront-engine/pkg/types"
)

// Repository persists product aggregates through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GetProduct loads a tenant's product with its option groups and variants.
func (r *Repository) GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error) {
	var row models.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		First(&row).Error; err != nil {
		return nil, err
	}
	product := row.ToCatalog()
	return &product, nil
}

// SaveProduct inserts a product or replaces every mutable column of an
// existing one. It reports false when the id belongs to another tenant.
func (r *Repository) SaveProduct(ctx context.Context, product catalog.Product) (bool, error) {
	row := models.CatalogProductFrom(product)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category_id", "name", "type", "base_price", "option_groups", "variants", "updated_at",
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "products", Name: "tenant_id"}, Value: product.TenantID},
			}},
		}).
		Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReplaceVariants swaps the product's whole variant list in a single update
// and reports whether the product exists.
func (r *Repository) ReplaceVariants(ctx context.Context, tenantID, productID string, variants []catalog.ProductVariant) (bool, error) {
	if variants == nil {
		variants = []catalog.ProductVariant{}
	}
	res := r.db.WithContext(ctx).
		Model(&models.CatalogProduct{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Update("variants", types.NewJSONColumn(variants))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

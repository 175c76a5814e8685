package campaigns

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-engine/pkg/db/models"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

// Repository persists campaigns through GORM.
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

// ListByTenant returns every campaign of a tenant ordered by priority.
func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]Campaign, error) {
	var rows []models.Campaign
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority DESC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Campaign, len(rows))
	for i, row := range rows {
		out[i] = fromModel(row)
	}
	return out, nil
}

// FindByID loads one campaign of a tenant.
func (r *Repository) FindByID(ctx context.Context, tenantID, id string) (*Campaign, error) {
	var row models.Campaign
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&row).Error; err != nil {
		return nil, err
	}
	campaign := fromModel(row)
	return &campaign, nil
}

// Create inserts a campaign.
func (r *Repository) Create(ctx context.Context, campaign Campaign) (*Campaign, error) {
	row := toModel(campaign)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	created := fromModel(row)
	return &created, nil
}

// UpdateStatus changes a campaign's status and reports whether a row matched.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id string, status enums.CampaignStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a campaign and reports whether a row matched.
func (r *Repository) Delete(ctx context.Context, tenantID, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.Campaign{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

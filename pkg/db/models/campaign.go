package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/pkg/enums"
)

// Campaign is a tenant-scoped promotional rule.
type Campaign struct {
	ID          string               `gorm:"column:id;primaryKey"`
	TenantID    string               `gorm:"column:tenant_id;not null"`
	Name        string               `gorm:"column:name;not null"`
	Status      enums.CampaignStatus `gorm:"column:status;not null"`
	Type        enums.CampaignType   `gorm:"column:type;not null"`
	Value       decimal.Decimal      `gorm:"column:value;type:numeric(12,2);not null"`
	AppliesTo   enums.CampaignScope  `gorm:"column:applies_to;not null"`
	CategoryIDs pq.StringArray       `gorm:"column:category_ids;type:text[]"`
	ProductIDs  pq.StringArray       `gorm:"column:product_ids;type:text[]"`
	StartAt     *time.Time           `gorm:"column:start_at"`
	EndAt       *time.Time           `gorm:"column:end_at"`
	Stackable   bool                 `gorm:"column:stackable;not null;default:false"`
	Priority    int                  `gorm:"column:priority;not null;default:0"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Campaign) TableName() string { return "campaigns" }

package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-engine/pkg/db"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
)

// Service exposes campaign management and discount previews.
type Service interface {
	List(ctx context.Context, tenantID string) ([]Campaign, error)
	Create(ctx context.Context, tenantID string, input CreateInput) (*Campaign, error)
	SetStatus(ctx context.Context, tenantID, id string, status enums.CampaignStatus) error
	Delete(ctx context.Context, tenantID, id string) error
	Preview(ctx context.Context, tenantID string, input PreviewInput) (Result, error)
}

// CreateInput holds the validated payload to create a campaign.
type CreateInput struct {
	Name        string
	Status      enums.CampaignStatus
	Type        enums.CampaignType
	Value       decimal.Decimal
	AppliesTo   enums.CampaignScope
	CategoryIDs []string
	ProductIDs  []string
	StartAt     *time.Time
	EndAt       *time.Time
	Stackable   bool
	Priority    int
}

// PreviewInput describes a price to run through the campaign engine.
type PreviewInput struct {
	Price      decimal.Decimal
	ProductID  string
	CategoryID string
}

type campaignStore interface {
	ListByTenant(ctx context.Context, tenantID string) ([]Campaign, error)
	Create(ctx context.Context, campaign Campaign) (*Campaign, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status enums.CampaignStatus) (bool, error)
	Delete(ctx context.Context, tenantID, id string) (bool, error)
}

type service struct {
	repo campaignStore
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs a campaign service instance.
func NewService(repo campaignStore, logg *logger.Logger, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaign repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, logg: logg, now: now}, nil
}

func (s *service) List(ctx context.Context, tenantID string) ([]Campaign, error) {
	list, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*Campaign, error) {
	campaign := Campaign{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(input.Name),
		Status:      input.Status,
		Type:        input.Type,
		Value:       input.Value,
		AppliesTo:   input.AppliesTo,
		CategoryIDs: input.CategoryIDs,
		ProductIDs:  input.ProductIDs,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Stackable:   input.Stackable,
		Priority:    input.Priority,
	}
	if campaign.Status == "" {
		campaign.Status = enums.CampaignStatusDraft
	}
	if err := Validate(campaign); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "campaign already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"tenant_id":   tenantID,
		"campaign_id": created.ID,
		"status":      created.Status,
	})
	s.logg.Info(ctx, "campaign.created")
	return created, nil
}

func (s *service) SetStatus(ctx context.Context, tenantID, id string, status enums.CampaignStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
	}
	ok, err := s.repo.UpdateStatus(ctx, tenantID, id, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign status")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"tenant_id": tenantID, "campaign_id": id, "status": status})
	s.logg.Info(ctx, "campaign.status_changed")
	return nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	ok, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
	}
	ctx = s.logg.WithCampaignID(s.logg.WithTenantID(ctx, tenantID), id)
	s.logg.Info(ctx, "campaign.deleted")
	return nil
}

func (s *service) Preview(ctx context.Context, tenantID string, input PreviewInput) (Result, error) {
	if input.Price.IsNegative() {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	list, err := s.List(ctx, tenantID)
	if err != nil {
		return Result{}, err
	}
	return Select(input.Price, list, input.ProductID, input.CategoryID, s.now()), nil
}

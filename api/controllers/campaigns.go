package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/api/responses"
	"github.com/angelmondragon/storefront-engine/api/validators"
	"github.com/angelmondragon/storefront-engine/internal/campaigns"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
)

func ListCampaigns(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CreateCampaign(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCampaignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type createCampaignRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Status      string          `json:"status,omitempty"`
	Type        string          `json:"type" validate:"required"`
	Value       decimal.Decimal `json:"value"`
	AppliesTo   string          `json:"applies_to" validate:"required"`
	CategoryIDs []string        `json:"category_ids,omitempty" validate:"omitempty,dive,required"`
	ProductIDs  []string        `json:"product_ids,omitempty" validate:"omitempty,dive,required"`
	StartAt     *time.Time      `json:"start_at,omitempty"`
	EndAt       *time.Time      `json:"end_at,omitempty"`
	Stackable   bool            `json:"stackable"`
	Priority    int             `json:"priority"`
}

func (r createCampaignRequest) toCreateInput() (campaigns.CreateInput, error) {
	var status enums.CampaignStatus
	if raw := strings.TrimSpace(r.Status); raw != "" {
		parsed, err := enums.ParseCampaignStatus(raw)
		if err != nil {
			return campaigns.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		status = parsed
	}

	campaignType, err := enums.ParseCampaignType(strings.TrimSpace(r.Type))
	if err != nil {
		return campaigns.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid campaign type")
	}

	appliesTo, err := enums.ParseCampaignScope(strings.TrimSpace(r.AppliesTo))
	if err != nil {
		return campaigns.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid applies_to")
	}

	return campaigns.CreateInput{
		Name:        validators.SanitizeString(r.Name, 120),
		Status:      status,
		Type:        campaignType,
		Value:       r.Value,
		AppliesTo:   appliesTo,
		CategoryIDs: r.CategoryIDs,
		ProductIDs:  r.ProductIDs,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		Stackable:   r.Stackable,
		Priority:    r.Priority,
	}, nil
}

type campaignStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func SetCampaignStatus(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload campaignStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseCampaignStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		if err := svc.SetStatus(r.Context(), tenantID, ids[0], status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": ids[0], "status": string(status)})
	}
}

func DeleteCampaign(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ids, err := scope(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, ids[0]); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

type previewCampaignRequest struct {
	Price      decimal.Decimal `json:"price"`
	ProductID  string          `json:"product_id,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
}

// PreviewCampaign shows which campaign would discount a price right now.
func PreviewCampaign(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload previewCampaignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Preview(r.Context(), tenantID, campaigns.PreviewInput{
			Price:      payload.Price,
			ProductID:  strings.TrimSpace(payload.ProductID),
			CategoryID: strings.TrimSpace(payload.CategoryID),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

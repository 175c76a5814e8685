package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-engine/api/responses"
	"github.com/angelmondragon/storefront-engine/api/validators"
	"github.com/angelmondragon/storefront-engine/internal/addons"
	"github.com/angelmondragon/storefront-engine/internal/catalog"
	"github.com/angelmondragon/storefront-engine/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
)

// AddonSessions is the addon state store the handlers drive.
type AddonSessions interface {
	Load(ctx context.Context, product catalog.Product, sessionID string) (*addons.Selection, error)
	Select(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string) (*addons.Selection, error)
	SetPlacement(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string, placement enums.Placement) (*addons.Selection, error)
	Remove(ctx context.Context, product catalog.Product, sessionID, groupID, itemID string) (*addons.Selection, error)
	Clear(ctx context.Context, product catalog.Product, sessionID string) error
}

// ProductLoader fetches the product an addon session belongs to.
type ProductLoader interface {
	GetProduct(ctx context.Context, tenantID, productID string) (*catalog.Product, error)
}

type addonSessionResponse struct {
	SessionID       string                   `json:"session_id"`
	Entries         []addons.Entry           `json:"entries"`
	SelectedOptions []catalog.GroupSelection `json:"selected_options"`
	Total           decimal.Decimal          `json:"total"`
	Selected        *bool                    `json:"selected,omitempty"`
}

func newAddonSessionResponse(sessionID string, sel *addons.Selection) addonSessionResponse {
	return addonSessionResponse{
		SessionID:       sessionID,
		Entries:         sel.Entries(),
		SelectedOptions: sel.SelectedOptions(),
		Total:           sel.Total(),
	}
}

type addonTarget struct {
	tenantID  string
	sessionID string
	groupID   string
	itemID    string
	product   catalog.Product
}

func loadAddonTarget(r *http.Request, products ProductLoader, withItem bool) (addonTarget, error) {
	names := []string{"productId", "sessionId"}
	if withItem {
		names = append(names, "groupId", "itemId")
	}
	tenantID, ids, err := scope(r, names...)
	if err != nil {
		return addonTarget{}, err
	}
	p, err := products.GetProduct(r.Context(), tenantID, ids[0])
	if err != nil {
		return addonTarget{}, err
	}
	target := addonTarget{tenantID: tenantID, sessionID: ids[1], product: *p}
	if withItem {
		target.groupID, target.itemID = ids[2], ids[3]
	}
	return target, nil
}

// GetAddonSession returns the session's current addon selection.
func GetAddonSession(products ProductLoader, sessions AddonSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := loadAddonTarget(r, products, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sel, err := sessions.Load(r.Context(), target.product, target.sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddonSessionResponse(target.sessionID, sel))
	}
}

// SelectAddon applies a click on an addon item. Half-capable groups add the
// item, other groups toggle it.
func SelectAddon(products ProductLoader, sessions AddonSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := loadAddonTarget(r, products, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sel, err := sessions.Select(r.Context(), target.product, target.sessionID, target.groupID, target.itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		_, selected := sel.Get(target.groupID, target.itemID)
		resp := newAddonSessionResponse(target.sessionID, sel)
		resp.Selected = &selected
		responses.WriteSuccess(w, resp)
	}
}

type addonPlacementRequest struct {
	Placement string `json:"placement" validate:"required"`
}

// SetAddonPlacement moves a selected addon item to WHOLE, LEFT or RIGHT.
func SetAddonPlacement(products ProductLoader, sessions AddonSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := loadAddonTarget(r, products, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addonPlacementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placement, err := enums.ParsePlacement(strings.ToUpper(strings.TrimSpace(payload.Placement)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid placement"))
			return
		}

		sel, err := sessions.SetPlacement(r.Context(), target.product, target.sessionID, target.groupID, target.itemID, placement)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddonSessionResponse(target.sessionID, sel))
	}
}

// RemoveAddon drops an item from the session's selection.
func RemoveAddon(products ProductLoader, sessions AddonSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := loadAddonTarget(r, products, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sel, err := sessions.Remove(r.Context(), target.product, target.sessionID, target.groupID, target.itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddonSessionResponse(target.sessionID, sel))
	}
}

// ClearAddonSession deletes the session's selection.
func ClearAddonSession(products ProductLoader, sessions AddonSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := loadAddonTarget(r, products, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sessions.Clear(r.Context(), target.product, target.sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithSessionID(logg.WithProductID(r.Context(), target.product.ID), target.sessionID)
			logg.Info(ctx, "addons.session_cleared")
		}
		responses.WriteNoContent(w)
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-engine/api/middleware"
	"github.com/angelmondragon/storefront-engine/api/validators"
	pkgerrors "github.com/angelmondragon/storefront-engine/pkg/errors"
)

func tenantFrom(r *http.Request) (string, error) {
	tenantID := middleware.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing")
	}
	return tenantID, nil
}

func urlParam(r *http.Request, name string) (string, error) {
	return validators.PathParam(chi.URLParam(r, name), name)
}

// scope returns the tenant plus each named path parameter, in order.
func scope(r *http.Request, names ...string) (string, []string, error) {
	tenantID, err := tenantFrom(r)
	if err != nil {
		return "", nil, err
	}
	values := make([]string, 0, len(names))
	for _, name := range names {
		value, err := urlParam(r, name)
		if err != nil {
			return "", nil, err
		}
		values = append(values, value)
	}
	return tenantID, values, nil
}

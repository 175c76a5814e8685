package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-engine/api/controllers"
	"github.com/angelmondragon/storefront-engine/api/middleware"
	"github.com/angelmondragon/storefront-engine/internal/campaigns"
	"github.com/angelmondragon/storefront-engine/internal/pricing"
	product "github.com/angelmondragon/storefront-engine/internal/products"
	"github.com/angelmondragon/storefront-engine/pkg/config"
	"github.com/angelmondragon/storefront-engine/pkg/db"
	"github.com/angelmondragon/storefront-engine/pkg/logger"
	"github.com/angelmondragon/storefront-engine/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	gatherer prometheus.Gatherer,
	productService product.Service,
	pricingService pricing.Service,
	campaignService campaigns.Service,
	addonSessions controllers.AddonSessions,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisP != nil {
		readiness["redis"] = redisP
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", controllers.Metrics(gatherer))
	}

	r.Route("/api/v1/tenants/{tenantId}", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))

		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(productService, logg))
			r.Put("/", controllers.PutProduct(productService, logg))
			r.Get("/availability", controllers.ProductAvailability(productService, logg))
			r.Post("/resolve", controllers.ResolveSelection(productService, logg))
			r.Post("/variants/regenerate", controllers.RegenerateVariants(productService, logg))

			r.Route("/addons/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.GetAddonSession(productService, addonSessions, logg))
				r.Delete("/", controllers.ClearAddonSession(productService, addonSessions, logg))
				r.Post("/items/{groupId}/{itemId}", controllers.SelectAddon(productService, addonSessions, logg))
				r.Patch("/items/{groupId}/{itemId}", controllers.SetAddonPlacement(productService, addonSessions, logg))
				r.Delete("/items/{groupId}/{itemId}", controllers.RemoveAddon(productService, addonSessions, logg))
			})
		})

		r.Post("/cart/quote", controllers.QuoteCart(pricingService, logg))

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", controllers.ListCampaigns(campaignService, logg))
			r.Post("/", controllers.CreateCampaign(campaignService, logg))
			r.Post("/preview", controllers.PreviewCampaign(campaignService, logg))
			r.Patch("/{campaignId}/status", controllers.SetCampaignStatus(campaignService, logg))
			r.Delete("/{campaignId}", controllers.DeleteCampaign(campaignService, logg))
		})
	})

	return r
}

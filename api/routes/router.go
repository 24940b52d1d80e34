package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasmedina/adbridge-backend/api/controllers"
	"github.com/lucasmedina/adbridge-backend/api/middleware"
	"github.com/lucasmedina/adbridge-backend/internal/accounts"
	"github.com/lucasmedina/adbridge-backend/internal/admin"
	"github.com/lucasmedina/adbridge-backend/internal/adrequests"
	"github.com/lucasmedina/adbridge-backend/internal/auth"
	"github.com/lucasmedina/adbridge-backend/internal/campaigns"
	"github.com/lucasmedina/adbridge-backend/internal/exports"
	"github.com/lucasmedina/adbridge-backend/pkg/config"
	"github.com/lucasmedina/adbridge-backend/pkg/db"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     db.Pinger
	RedisPinger  redis.Pinger
	AuthService  auth.Service
	Register     auth.RegisterService
	Accounts     *accounts.Repository
	Campaigns    campaigns.Service
	AdRequests   adrequests.Service
	Exports      exports.Service
	AdminService admin.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/register/sponsor", controllers.RegisterSponsor(deps.Register, deps.AuthService, logg))
		r.Post("/register/influencer", controllers.RegisterInfluencer(deps.Register, deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", controllers.CampaignBrowse(deps.Campaigns, logg))
			r.Get("/{campaignId}", controllers.CampaignDetail(deps.Campaigns, logg))
			r.Get("/{campaignId}/ad-requests", controllers.AdRequestsForCampaign(deps.AdRequests, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("sponsor", logg))
				r.Post("/", controllers.CampaignCreate(deps.Campaigns, logg))
				r.Put("/{campaignId}", controllers.CampaignUpdate(deps.Campaigns, logg))
				r.Delete("/{campaignId}", controllers.CampaignDelete(deps.Campaigns, logg))
			})
		})

		r.Route("/sponsor", func(r chi.Router) {
			r.Use(middleware.RequireRole("sponsor", logg))
			r.Get("/campaigns", controllers.CampaignMine(deps.Campaigns, logg))
			r.Get("/influencers", controllers.InfluencerDirectory(deps.Accounts, logg))
			r.Post("/exports/campaigns", controllers.ExportCampaigns(deps.Exports, logg))
			r.Post("/ad-requests", controllers.AdRequestCreate(deps.AdRequests, logg))
		})

		r.Route("/influencer", func(r chi.Router) {
			r.Use(middleware.RequireRole("influencer", logg))
			r.Get("/ad-requests", controllers.AdRequestInbox(deps.AdRequests, logg))
			r.Post("/ad-requests/{requestId}/accept", controllers.AdRequestAccept(deps.AdRequests, logg))
			r.Post("/ad-requests/{requestId}/reject", controllers.AdRequestReject(deps.AdRequests, logg))
			r.Post("/ad-requests/{requestId}/negotiate", controllers.AdRequestNegotiate(deps.AdRequests, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Get("/users", controllers.AdminListUsers(deps.AdminService, logg))
		r.Get("/campaigns", controllers.AdminListCampaigns(deps.AdminService, logg))
		r.Get("/ad-requests", controllers.AdminListAdRequests(deps.AdminService, logg))
		r.Post("/users/{userId}/flag", controllers.AdminFlagUser(deps.AdminService, logg))
		r.Post("/users/{userId}/approve", controllers.AdminApproveSponsor(deps.AdminService, logg))
		r.Post("/campaigns/{campaignId}/flag", controllers.AdminFlagCampaign(deps.AdminService, logg))
	})

	return r
}

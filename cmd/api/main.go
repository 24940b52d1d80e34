package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/lucasmedina/adbridge-backend/api/routes"
	"github.com/lucasmedina/adbridge-backend/internal/accounts"
	"github.com/lucasmedina/adbridge-backend/internal/admin"
	"github.com/lucasmedina/adbridge-backend/internal/adrequests"
	"github.com/lucasmedina/adbridge-backend/internal/auth"
	"github.com/lucasmedina/adbridge-backend/internal/campaigns"
	"github.com/lucasmedina/adbridge-backend/internal/exports"
	"github.com/lucasmedina/adbridge-backend/pkg/config"
	"github.com/lucasmedina/adbridge-backend/pkg/db"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/mailer"
	"github.com/lucasmedina/adbridge-backend/pkg/migrate"
	"github.com/lucasmedina/adbridge-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	mail, err := mailer.New(context.Background(), cfg.Mail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mailer", err)
		os.Exit(1)
	}

	accountsRepo := accounts.NewRepository(dbClient.DB())
	campaignsRepo := campaigns.NewRepository(dbClient.DB())
	adRequestsRepo := adrequests.NewRepository(dbClient.DB())
	campaignCache := campaigns.NewCache(redisClient, logg, cfg.CampaignCache.TTL)

	authService, err := auth.NewService(auth.ServiceParams{
		Accounts:  accountsRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	campaignService, err := campaigns.NewService(campaignsRepo, dbClient, campaignCache)
	if err != nil {
		logg.Error(context.Background(), "failed to create campaign service", err)
		os.Exit(1)
	}

	adRequestService, err := adrequests.NewService(adrequests.ServiceParams{
		Repo:      adRequestsRepo,
		Campaigns: campaignsRepo,
		Accounts:  accountsRepo,
		Tx:        dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ad request service", err)
		os.Exit(1)
	}

	exportService, err := exports.NewService(exports.ServiceParams{
		Accounts:  accountsRepo,
		Campaigns: campaignsRepo,
		Mailer:    mail,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.ServiceParams{
		Accounts:  accountsRepo,
		Campaigns: campaignsRepo,
		Requests:  adRequestsRepo,
		Cache:     campaignCache,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DBPinger:     dbClient,
			RedisPinger:  redisClient,
			AuthService:  authService,
			Register:     registerService,
			Accounts:     accountsRepo,
			Campaigns:    campaignService,
			AdRequests:   adRequestService,
			Exports:      exportService,
			AdminService: adminService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

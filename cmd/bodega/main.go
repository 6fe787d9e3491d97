package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ankurnehra/bodega/internal/application/actions"
	"github.com/ankurnehra/bodega/internal/application/auth"
	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/config"
	infraauth "github.com/ankurnehra/bodega/internal/infrastructure/auth"
	httprouter "github.com/ankurnehra/bodega/internal/infrastructure/http"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/handlers"
	"github.com/ankurnehra/bodega/internal/infrastructure/http/middleware"
	"github.com/ankurnehra/bodega/internal/infrastructure/persistence/postgres"
	"github.com/ankurnehra/bodega/internal/infrastructure/queue"
	"github.com/ankurnehra/bodega/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	linkRepo := postgres.NewSupplyLinkRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txManager := postgres.NewTxManager(pool)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, cfg.JWT.AccessExpiry)

	resolver := authz.NewResolver(membershipRepo, linkRepo)
	itemActions := actions.NewItemActions(companyRepo, itemRepo, resolver, txManager)
	linkActions := actions.NewSupplyLinkActions(companyRepo, linkRepo, resolver, txManager, taskEnqueuer)
	membershipActions := actions.NewMembershipActions(companyRepo, userRepo, membershipRepo, resolver, txManager, taskEnqueuer)
	companyActions := actions.NewCompanyActions(companyRepo, membershipRepo, resolver, txManager)
	orderActions := actions.NewOrderActions(companyRepo, linkRepo, orderRepo, resolver, txManager, taskEnqueuer)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.Rate)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.Rate)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(false))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	requireJWT := middleware.NewAuthValidator(issuer).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:        handlers.NewAuthHandler(registerUC, loginUC, log),
		HealthHandler:      healthHandler,
		UsersHandler:       handlers.NewUsersHandler(userRepo, membershipRepo, log),
		CompaniesHandler:   handlers.NewCompaniesHandler(companyActions, log),
		ItemsHandler:       handlers.NewItemsHandler(itemActions, log),
		SupplyLinksHandler: handlers.NewSupplyLinksHandler(linkActions, log),
		MembershipsHandler: handlers.NewMembershipsHandler(membershipActions, log),
		OrdersHandler:      handlers.NewOrdersHandler(orderActions, log),
		RequireJWT:         requireJWT,
		Log:                log,
		Secure:             secureMiddleware,
		CORS:               corsMiddleware,
		IPRateLimit:        ipLimit,
		UserRateLimit:      userLimit,
		Metrics:            true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

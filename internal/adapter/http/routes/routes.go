package routes

import (
	"context"
	"log"
	"strconv"

	_ "ingressos_checkout/docs" // generated by swag init
	"ingressos_checkout/internal/adapter/http/handlers"
	"ingressos_checkout/internal/adapter/http/middleware"
	"ingressos_checkout/internal/adapter/persistence/repository"
	"ingressos_checkout/internal/config"
	"ingressos_checkout/internal/infrastructure/cache"
	"ingressos_checkout/internal/infrastructure/database"
	"ingressos_checkout/internal/infrastructure/notify"
	"ingressos_checkout/internal/infrastructure/payments"
	"ingressos_checkout/internal/usecase"
	"ingressos_checkout/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run(cfg config.Config) {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	checkoutHandler, webhookHandler := buildHandlers(context.Background(), cfg)
	registerRoutes(router, cfg, checkoutHandler, webhookHandler)

	err := router.Run(":" + strconv.Itoa(cfg.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func buildHandlers(ctx context.Context, cfg config.Config) (*handlers.CheckoutHandler, *handlers.WebhookHandler) {
	ddb := database.ConnectDynamoDB(ctx)
	preferenceRepo := repository.NewPaymentPreferenceDynamoRepository(ddb)

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to the event catalog: %v", err)
	}
	eventRepo := repository.NewEventPostgresRepository(db)

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Gateway)
	if err != nil {
		log.Printf("[checkout][routes] mercado pago gateway not configured environment=%s err=%v", cfg.Gateway.Environment, err)
	} else {
		gateway = mpGateway
		log.Printf("[checkout][routes] mercado pago gateway ready environment=%s mock=%t", mpGateway.Environment(), cfg.Gateway.MockMode)
	}

	var (
		statusCache interfaces.IPreferenceStatusCache
		dedup       interfaces.IWebhookDeduplicator
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("[checkout][routes] redis unavailable, running without status cache addr=%s err=%v", cfg.Redis.Addr, err)
		} else {
			statusCache = cache.NewRedisStatusCache(rdb, cfg.Redis.StatusTTL)
			dedup = cache.NewRedisWebhookDeduplicator(rdb, 0)
		}
	}

	var notifier interfaces.IPaymentNotifier
	tg, err := notify.NewTelegramNotifier(cfg.Telegram)
	if err != nil {
		log.Printf("[checkout][routes] telegram notifications disabled err=%v", err)
	} else {
		notifier = tg
	}

	checkoutUseCase := usecase.NewCheckoutUseCase(preferenceRepo, eventRepo, gateway, statusCache, usecase.CheckoutOptions{
		BaseURL:         cfg.BaseURL,
		NotificationURL: cfg.Gateway.NotificationURL,
		PixExpiration:   cfg.Gateway.PixExpiration,
	})
	reconcileUseCase := usecase.NewReconcileUseCase(preferenceRepo, gateway, statusCache, dedup, notifier)

	return handlers.NewCheckoutHandler(checkoutUseCase), handlers.NewWebhookHandler(reconcileUseCase, cfg.Gateway.WebhookSecret)
}

func registerRoutes(router *gin.Engine, cfg config.Config, checkoutHandler *handlers.CheckoutHandler, webhookHandler *handlers.WebhookHandler) {
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addWebhookRoutes(v1, webhookHandler)

	// Session is optional: guests check out without a token.
	authed := v1.Group("", middleware.OptionalAuth(cfg.Auth.JWTSecret))
	addCheckoutRoutes(authed, checkoutHandler)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

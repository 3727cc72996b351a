package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/vendora-api/internal/application/auth"
	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/application/notification"
	"github.com/tu-usuario/vendora-api/internal/application/usecase"
	"github.com/tu-usuario/vendora-api/internal/domain/threshold"
	"github.com/tu-usuario/vendora-api/internal/infrastructure/bus"
	"github.com/tu-usuario/vendora-api/internal/infrastructure/cache"
	"github.com/tu-usuario/vendora-api/internal/infrastructure/email"
	"github.com/tu-usuario/vendora-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/vendora-api/internal/interfaces/http"
	"github.com/tu-usuario/vendora-api/pkg/config"
	"github.com/tu-usuario/vendora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	notificationLogRepo := postgres.NewNotificationLogRepository(pool)
	velocityRepo := postgres.NewSalesVelocityRepository(pool)

	// Caché de niveles: Redis si está configurado, memoria si no.
	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var levelCache inventory.LevelCache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := cache.NewRedisLevelCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cacheTTL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		levelCache = redisCache
	} else {
		levelCache = cache.NewMemoryLevelCache(cacheTTL)
	}

	eventBus := bus.NewInMemory(log)

	policy := threshold.NewPolicy(threshold.Config{
		Default:    cfg.Inventory.LowStockThreshold,
		Categories: cfg.Inventory.CategoryThresholds,
	})
	monitor := inventory.NewMonitor(inventoryRepo, variantRepo, policy, eventBus, levelCache, log)

	// Pipeline de alertas de stock por correo, con reintentos y dead-letter.
	sender := email.NewStockAlertSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	pipeline := notification.NewPipeline(
		sender,
		notification.NewAlertAuditLogger(notificationLogRepo),
		notification.ValidateStockAlert,
		notification.Options{
			MaxRetries: cfg.Notification.MaxRetries,
			Backoff: notification.Backoff{
				Mode:      notification.BackoffMode(cfg.Notification.BackoffMode),
				BaseDelay: time.Duration(cfg.Notification.BaseDelayMS) * time.Millisecond,
			},
		},
		log,
	)
	adapter := notification.NewStockAlertAdapter(pipeline, velocityRepo, cfg.Inventory.AlertRecipient, log)
	adapter.Register(eventBus)

	storeUC := usecase.NewStoreUseCase(storeRepo)
	variantUC := usecase.NewVariantUseCase(variantRepo)
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vendora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:          storeUC,
		VariantUC:        variantUC,
		AuthUC:           authUC,
		InventoryMonitor: monitor,
		NotificationLogs: notificationLogRepo,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Drenar los despachos de eventos en vuelo antes de salir.
	eventBus.Wait()

	log.Info().Msg("aplicación detenida")
}

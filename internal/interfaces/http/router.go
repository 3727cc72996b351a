package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/vendora-api/internal/application/auth"
	"github.com/tu-usuario/vendora-api/internal/application/inventory"
	"github.com/tu-usuario/vendora-api/internal/application/usecase"
	"github.com/tu-usuario/vendora-api/internal/domain/entity"
	"github.com/tu-usuario/vendora-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC          *usecase.StoreUseCase
	VariantUC        *usecase.VariantUseCase
	AuthUC           *auth.AuthUseCase
	InventoryMonitor *inventory.Monitor
	NotificationLogs repository.NotificationLogRepository
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Stores (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", storeHandler.Create)
	stores.Get("/:id", storeHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Variants (protegido)
	variants := protected.Group("/variants")
	variantHandler := NewVariantHandler(deps.VariantUC)
	variants.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), variantHandler.Create)
	variants.Get("/", variantHandler.List)
	variants.Get("/:id", variantHandler.GetByID)

	// Inventory (protegido; mutaciones solo admin/bodeguero)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryMonitor)
	invGroup.Post("/adjust", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Adjust)
	invGroup.Put("/:variantID", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Set)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/:variantID", inventoryHandler.Get)

	// Notifications (protegido, solo admin)
	notifications := protected.Group("/notifications", RequireRole(entity.RoleAdmin))
	notificationHandler := NewNotificationHandler(deps.NotificationLogs)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/dead-letters", notificationHandler.DeadLetters)
}

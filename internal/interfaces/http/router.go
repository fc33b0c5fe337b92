package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pyme/internal/application/auth"
	"github.com/tu-usuario/gestion-pyme/internal/application/inventory"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/application/usecase"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale       *sales.CreateSaleUseCase
	ReturnSale       *sales.ReturnSaleUseCase
	ListSales        *sales.ListSalesUseCase
	Receipt          *sales.ReceiptUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ListMovements    *inventory.ListMovementsUseCase
	ProductUC        *usecase.ProductUseCase
	ClientUC         *usecase.ClientUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	AuthUC           *auth.AuthUseCase
	RateLimiter      Limiter
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

	// Ventas: rutas protegidas y con límite de tasa compartido en Redis.
	// Los paths se conservan tal cual los consume el frontend histórico.
	salesHandler := NewSalesHandler(deps.CreateSale, deps.ReturnSale, deps.ListSales, deps.Receipt)
	salesGroup := app.Group("/sales", AuthMiddleware(deps.JWTSecret), RateLimitMiddleware(deps.RateLimiter))
	salesGroup.Post("/selling", salesHandler.Selling)
	salesGroup.Post("/sales_returns", salesHandler.SalesReturns)
	salesGroup.Get("/sales_returns", salesHandler.ListSales)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Resto de recursos protegidos (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; borrar solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.ListMovements)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleAdmin), clientHandler.Delete)

	// Employees (solo admin)
	employees := protected.Group("/employees", RequireRole(entity.RoleAdmin))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pdv-planilha-api/internal/application/analytics"
	"github.com/jhoicas/pdv-planilha-api/internal/application/auth"
	"github.com/jhoicas/pdv-planilha-api/internal/application/pos"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DashboardUC *analytics.DashboardUseCase
	ProductUC   *usecase.ProductUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	SalesUC     *usecase.SalesUseCase
	UserUC      *usecase.UserUseCase
	CheckoutUC  *pos.CheckoutUseCase
	JWTSecret   string
	Cookie      CookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer o cookie auth_token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Painel
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
	protected.Get("/dashboard/export.pdf", dashboardHandler.ExportPDF)
	protected.Get("/dashboard/export.xlsx", dashboardHandler.ExportXLSX)

	// Produtos: lectura para todos, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/produtos", productHandler.List)
	protected.Post("/produtos", adminOnly, productHandler.Create)
	protected.Put("/produtos/:id", adminOnly, productHandler.Update)
	protected.Delete("/produtos/:id", adminOnly, productHandler.Delete)

	// Despesas
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	protected.Get("/despesas", expenseHandler.List)
	protected.Post("/despesas", expenseHandler.Create)
	protected.Put("/despesas/:id", expenseHandler.Update)
	protected.Delete("/despesas/:id", expenseHandler.Delete)

	// Vendas + PDV
	salesHandler := NewSalesHandler(deps.SalesUC, deps.CheckoutUC)
	protected.Get("/vendas", salesHandler.History)
	protected.Post("/pdv/finalizar", salesHandler.Checkout)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/usuarios", adminOnly, userHandler.List)
	protected.Post("/usuarios", adminOnly, userHandler.Create)
}

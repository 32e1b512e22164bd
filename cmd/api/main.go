package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/pdv-planilha-api/internal/application/analytics"
	"github.com/jhoicas/pdv-planilha-api/internal/application/auth"
	"github.com/jhoicas/pdv-planilha-api/internal/application/pos"
	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/cache"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/lock"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/redisclient"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/report"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/pdv-planilha-api/internal/interfaces/http"
	"github.com/jhoicas/pdv-planilha-api/pkg/config"
	"github.com/jhoicas/pdv-planilha-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// Montos como números JSON (1234.5), no strings.
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	loc := normalize.LoadLocation(cfg.App.Timezone)
	if loc.String() != cfg.App.Timezone {
		log.Warn().Str("timezone", cfg.App.Timezone).Msg("zona horaria desconocida, se usa UTC")
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir planilha")
	}
	defer closeStore()

	// Sin Redis: caché desactivada y lock en proceso (una sola instancia).
	var dashCache ports.DashboardCache = cache.NoopDashboardCache{}
	var locker ports.Locker = lock.NewMutexLocker()
	if cfg.Cache.Enabled {
		rdb, err := redisclient.New(ctx, cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, sigo sin caché")
		} else {
			defer rdb.Close()
			dashCache = cache.NewRedisDashboardCache(rdb, time.Duration(cfg.Cache.DashboardTTLSeconds)*time.Second)
			locker = lock.NewRedisLocker(rdb, time.Duration(cfg.Cache.LockTTLSeconds)*time.Second)
			log.Info().Msg("redis conectado: caché del painel y lock distribuido")
		}
	}

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(store, dashCache, report.NewExporter(cfg.App.Name), loc,
		appanalytics.WithLogger(log.Component("dashboard")))
	productUC := usecase.NewProductUseCase(store, loc)
	expenseUC := usecase.NewExpenseUseCase(store, dashCache, loc, log.Component("despesas"))
	salesUC := usecase.NewSalesUseCase(store, loc)
	userUC := usecase.NewUserUseCase(store)
	checkoutUC := pos.NewCheckoutUseCase(store, locker, dashCache, loc, log.Component("pdv"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: cfg.HTTP.CORSOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     cfg.Swagger.Path,
			Title:    "PDV Planilha API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		ProductUC:   productUC,
		ExpenseUC:   expenseUC,
		SalesUC:     salesUC,
		UserUC:      userUC,
		CheckoutUC:  checkoutUC,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Secure: cfg.HTTP.CookieSecure,
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
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

	log.Info().Msg("aplicación detenida")
}

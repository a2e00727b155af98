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

	_ "github.com/jhoicas/patrimonio-api/docs"
	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/auth"
	"github.com/jhoicas/patrimonio-api/internal/application/items"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
	"github.com/jhoicas/patrimonio-api/internal/application/returns"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
	infrapdf "github.com/jhoicas/patrimonio-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/patrimonio-api/internal/interfaces/http"
	"github.com/jhoicas/patrimonio-api/pkg/config"
	"github.com/jhoicas/patrimonio-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	var store repository.DocumentStore
	switch cfg.Store.Driver {
	case "sqlite":
		s, err := docstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacén sqlite")
		}
		defer s.Close()
		store = s
	default:
		s, err := docstore.NewFileStore(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacén de archivo")
		}
		store = s
	}

	recorder := audit.NewRecorder(store, log)
	engine := movement.NewEngine(store, recorder)
	itemUC := items.NewUseCase(store, recorder)
	categoryUC := usecase.NewCategoryUseCase(store, recorder)
	fieldUC := usecase.NewFieldUseCase(store, recorder)
	duplicateUC := usecase.NewDuplicateUseCase(store, recorder)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	returnsUC := returns.NewUseCase(store, recorder, pdfGenerator)
	authUC := auth.NewUseCase(store, cfg.JWT)

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
		Title:    "Patrimônio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:  categoryUC,
		FieldUC:     fieldUC,
		DuplicateUC: duplicateUC,
		ItemUC:      itemUC,
		Engine:      engine,
		ReturnsUC:   returnsUC,
		AuthUC:      authUC,
		Audit:       recorder,
		JWTSecret:   cfg.JWT.Secret,
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

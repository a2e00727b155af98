package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/auth"
	"github.com/jhoicas/patrimonio-api/internal/application/items"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
	"github.com/jhoicas/patrimonio-api/internal/application/returns"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC  *usecase.CategoryUseCase
	FieldUC     *usecase.FieldUseCase
	DuplicateUC *usecase.DuplicateUseCase
	ItemUC      *items.UseCase
	Engine      *movement.Engine
	ReturnsUC   *returns.UseCase
	AuthUC      *auth.UseCase
	Audit       *audit.Recorder
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; gestión de usuarios solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/users", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Categorías y campos (lectura para todos, mutación solo admin)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.FieldUC)
	itemHandler := NewItemHandler(deps.ItemUC, deps.Engine)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", admin, categoryHandler.Create)
	categories.Delete("/:id", admin, categoryHandler.Delete)
	categories.Get("/:id/fields", categoryHandler.ListFields)
	categories.Post("/:id/fields", admin, categoryHandler.CreateField)
	categories.Get("/:id/items", itemHandler.ListByCategory)

	fields := protected.Group("/fields")
	fields.Put("/:id", admin, categoryHandler.UpdateField)
	fields.Delete("/:id", admin, categoryHandler.DeleteField)

	// Items: CRUD con protocolo de confirmación, split, historial, devolución
	returnHandler := NewReturnHandler(deps.ReturnsUC)
	itemsGroup := protected.Group("/items")
	itemsGroup.Post("/", itemHandler.Create)
	itemsGroup.Post("/pending/:id/confirm", itemHandler.Confirm)
	itemsGroup.Post("/pending/:id/cancel", itemHandler.Cancel)
	itemsGroup.Get("/:id", itemHandler.Get)
	itemsGroup.Put("/:id", itemHandler.Update)
	itemsGroup.Delete("/:id", itemHandler.Delete)
	itemsGroup.Post("/:id/split", itemHandler.Split)
	itemsGroup.Get("/:id/history", itemHandler.History)
	itemsGroup.Post("/:id/return", returnHandler.ReturnItem)

	// Historial global y feed de actividades
	movementHandler := NewMovementHandler(deps.Engine, deps.Audit)
	protected.Get("/movements", movementHandler.List)
	protected.Get("/activities", movementHandler.Activities)

	// Duplicados (configuración solo admin)
	duplicateHandler := NewDuplicateHandler(deps.DuplicateUC)
	duplicates := protected.Group("/duplicates")
	duplicates.Get("/report", duplicateHandler.Report)
	duplicates.Get("/config", duplicateHandler.GetConfig)
	duplicates.Put("/config", admin, duplicateHandler.SetConfig)

	// Devoluciones y notas de devolución
	protected.Get("/returns", returnHandler.ListRecords)
	notes := protected.Group("/return-notes")
	notes.Post("/", returnHandler.CreateNote)
	notes.Get("/", returnHandler.ListNotes)
	notes.Get("/:id", returnHandler.GetNote)
	notes.Delete("/:id", returnHandler.DeleteNote)
	notes.Post("/:id/process", returnHandler.ProcessNote)
	notes.Post("/:id/cancel", returnHandler.CancelNote)
	notes.Post("/:id/reopen", returnHandler.ReopenNote)
	notes.Get("/:id/pdf", returnHandler.NotePDF)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ComprasUC   *appcompras.UseCase
	PDF         Report
	XLSX        Report
	Collections CollectionFactory // nil si las compras viven en la API de documentos externa
	JWTSecret   string            // vacío: rutas sin autenticación (solo desarrollo)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	read, write := fiber.Handler(passThrough), fiber.Handler(passThrough)
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
		read = RequireRole(jwt.RoleAdmin, jwt.RoleComprador, jwt.RoleLectura)
		write = RequireRole(jwt.RoleAdmin, jwt.RoleComprador)
	}

	// Calculadora de compras
	compras := api.Group("/compras")
	h := NewComprasHandler(deps.ComprasUC, deps.PDF, deps.XLSX)
	compras.Post("/calculate", read, h.Calculate)
	compras.Get("/next-id", read, h.NextID)
	compras.Get("/", read, h.List)
	compras.Post("/", write, h.Create)
	compras.Get("/:id", read, h.GetByID)
	compras.Put("/:id", write, h.Update)
	compras.Get("/:id/pdf", read, h.PDF)
	compras.Get("/:id/xlsx", read, h.XLSX)

	// Colección genérica de documentos (frontend de la tienda)
	if deps.Collections != nil {
		docs := api.Group("/:database/compras")
		dh := NewDocumentHandler(deps.Collections)
		docs.Get("/", read, dh.List)
		docs.Post("/", write, dh.Create)
		docs.Get("/:id", read, dh.Get)
		docs.Put("/:id", write, dh.Replace)
		docs.Patch("/:id", write, dh.Patch)
	}
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

package http

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/compras-api/internal/application/dto"
	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/internal/domain/repository"
)

// DocumentCollection colección de compras con soporte de mezcla parcial (PATCH).
type DocumentCollection interface {
	repository.PurchaseRepository
	Patch(ctx context.Context, id string, fields map[string]json.RawMessage) (*entity.Purchase, error)
}

// CollectionFactory devuelve la colección de un {database}.
type CollectionFactory func(database string) DocumentCollection

var databaseNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// reservedDatabase /api/compras/:id se registra antes y taparía la colección con este nombre.
const reservedDatabase = "compras"

// DocumentHandler expone la colección genérica /api/{database}/compras con el mismo
// formato de documento que consume la calculadora.
type DocumentHandler struct {
	collections CollectionFactory
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(collections CollectionFactory) *DocumentHandler {
	return &DocumentHandler{collections: collections}
}

func (h *DocumentHandler) collection(c *fiber.Ctx) (DocumentCollection, error) {
	db := utils.CopyString(c.Params("database"))
	if !databaseNameRe.MatchString(db) || strings.EqualFold(db, reservedDatabase) {
		return nil, domain.ErrInvalidInput
	}
	return h.collections(db), nil
}

// List godoc
// @Summary      Listar documentos de compras
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        database  path   string  true   "Base de datos lógica"
// @Param        idCompra  query  int     false  "Filtrar por idCompra"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/{database}/compras [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	col, err := h.collection(c)
	if err != nil {
		return writeError(c, err)
	}
	if raw := c.Query("idCompra"); raw != "" {
		seq, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "idCompra debe ser entero"})
		}
		p, err := col.FindBySequence(c.UserContext(), seq)
		if err != nil {
			return writeError(c, err)
		}
		list := []*entity.Purchase{}
		if p != nil {
			list = append(list, p)
		}
		return c.JSON(dto.DocumentResponse{Data: list})
	}
	list, err := col.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*entity.Purchase{}
	}
	return c.JSON(dto.DocumentResponse{Data: list})
}

// Get godoc
// @Summary      Obtener documento de compra
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        database  path  string  true  "Base de datos lógica"
// @Param        id        path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{database}/compras/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	col, err := h.collection(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := col.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(dto.DocumentResponse{Data: p})
}

// Create godoc
// @Summary      Crear documento de compra
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        database  path  string           true  "Base de datos lógica"
// @Param        body      body  entity.Purchase  true  "Documento"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{database}/compras [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	col, err := h.collection(c)
	if err != nil {
		return writeError(c, err)
	}
	var p entity.Purchase
	if err := c.BodyParser(&p); err != nil {
		return badBody(c, err)
	}
	if p.SequenceID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "idCompra es requerido"})
	}
	p.ID = ""
	id, err := col.Create(c.UserContext(), &p)
	if err != nil {
		return writeError(c, err)
	}
	p.ID = id
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{Data: &p})
}

// Replace godoc
// @Summary      Reemplazar documento de compra
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        database  path  string           true  "Base de datos lógica"
// @Param        id        path  string           true  "ID del documento"
// @Param        body      body  entity.Purchase  true  "Documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{database}/compras/{id} [put]
func (h *DocumentHandler) Replace(c *fiber.Ctx) error {
	col, err := h.collection(c)
	if err != nil {
		return writeError(c, err)
	}
	var p entity.Purchase
	if err := c.BodyParser(&p); err != nil {
		return badBody(c, err)
	}
	id := utils.CopyString(c.Params("id"))
	if p.CreatedAt.IsZero() {
		stored, err := col.GetByID(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		if stored == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		p.CreatedAt = stored.CreatedAt
	}
	if err := col.Update(c.UserContext(), id, &p); err != nil {
		return writeError(c, err)
	}
	p.ID = id
	return c.JSON(dto.DocumentResponse{Data: &p})
}

// Patch godoc
// @Summary      Actualizar campos de un documento de compra
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        database  path  string  true  "Base de datos lógica"
// @Param        id        path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{database}/compras/{id} [patch]
func (h *DocumentHandler) Patch(c *fiber.Ctx) error {
	col, err := h.collection(c)
	if err != nil {
		return writeError(c, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return badBody(c, err)
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sin campos para actualizar"})
	}
	p, err := col.Patch(c.UserContext(), utils.CopyString(c.Params("id")), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DocumentResponse{Data: p})
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/application/dto"
	"github.com/jhoicas/compras-api/internal/domain/compras"
	"github.com/jhoicas/compras-api/internal/domain/entity"
)

// Report genera un archivo descargable a partir de una compra guardada (PDF, XLSX).
type Report interface {
	Generate(p *entity.Purchase) ([]byte, error)
	ContentType() string
	Extension() string
}

// ComprasHandler maneja la calculadora de compras.
type ComprasHandler struct {
	uc   *appcompras.UseCase
	pdf  Report
	xlsx Report
}

// NewComprasHandler construye el handler.
func NewComprasHandler(uc *appcompras.UseCase, pdf, xlsx Report) *ComprasHandler {
	return &ComprasHandler{uc: uc, pdf: pdf, xlsx: xlsx}
}

// Calculate godoc
// @Summary      Calcular compra sin guardar
// @Description  Reparte los gastos compartidos y calcula costos, márgenes y ganancias de cada línea.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "Compra digitada"
// @Success      200   {object}  entity.Purchase
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compras/calculate [post]
func (h *ComprasHandler) Calculate(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	inv, err := appcompras.InvoiceFromRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	res := h.uc.Calculate(inv)
	return c.JSON(compras.ToRecord(inv, res))
}

// NextID godoc
// @Summary      Siguiente idCompra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NextSequenceResponse
// @Router       /api/compras/next-id [get]
func (h *ComprasHandler) NextID(c *fiber.Ctx) error {
	seq, err := h.uc.NextSequenceID(c.UserContext())
	out := dto.NextSequenceResponse{SequenceID: seq}
	if err != nil {
		out.Warning = "no se pudo consultar el último idCompra; se usa el valor por defecto"
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de compras (0 = todas)"
// @Param        offset  query  int  false  "Compras a saltar"
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/compras [get]
func (h *ComprasHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	page.DefaultPage()

	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	from, to := page.Bounds(len(list))
	out := dto.PurchaseListResponse{
		Items:        make([]dto.PurchaseListItem, 0, to-from),
		Total:        len(list),
		PageResponse: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list[from:to] {
		out.Items = append(out.Items, appcompras.ListItem(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  entity.Purchase
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *ComprasHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.GetRecord(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

// Create godoc
// @Summary      Guardar compra nueva
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "Compra digitada"
// @Success      201   {object}  dto.SavePurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *ComprasHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	in.ID = ""
	return h.save(c, in, fiber.StatusCreated)
}

// Update godoc
// @Summary      Actualizar compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la compra"
// @Param        body  body  dto.PurchaseRequest  true  "Compra digitada"
// @Success      200   {object}  dto.SavePurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [put]
func (h *ComprasHandler) Update(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	in.ID = utils.CopyString(c.Params("id"))
	return h.save(c, in, fiber.StatusOK)
}

func (h *ComprasHandler) save(c *fiber.Ctx, in dto.PurchaseRequest, status int) error {
	inv, err := appcompras.InvoiceFromRequest(in)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Save(c.UserContext(), inv)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(dto.SavePurchaseResponse{
		ID:         res.ID,
		SequenceID: res.SequenceID,
		Created:    res.Created,
		Purchase:   res.Record,
	})
}

// PDF godoc
// @Summary      Reporte PDF de la compra
// @Tags         compras
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/pdf [get]
func (h *ComprasHandler) PDF(c *fiber.Ctx) error {
	return h.download(c, h.pdf)
}

// XLSX godoc
// @Summary      Exportar compra a Excel
// @Tags         compras
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/xlsx [get]
func (h *ComprasHandler) XLSX(c *fiber.Ctx) error {
	return h.download(c, h.xlsx)
}

func (h *ComprasHandler) download(c *fiber.Ctx, r Report) error {
	if r == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "formato no disponible"})
	}
	rec, err := h.uc.GetRecord(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := r.Generate(rec)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "REPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, r.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="compra-%d.%s"`, rec.SequenceID, r.Extension()))
	return c.Send(out)
}

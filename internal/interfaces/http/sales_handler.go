package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
)

// SalesHandler maneja ventas, devoluciones y el listado de ventas.
type SalesHandler struct {
	createSale *sales.CreateSaleUseCase
	returnSale *sales.ReturnSaleUseCase
	listSales  *sales.ListSalesUseCase
	receipt    *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(
	createSale *sales.CreateSaleUseCase,
	returnSale *sales.ReturnSaleUseCase,
	listSales *sales.ListSalesUseCase,
	receipt *sales.ReceiptUseCase,
) *SalesHandler {
	return &SalesHandler{createSale: createSale, returnSale: returnSale, listSales: listSales, receipt: receipt}
}

// Selling godoc
// @Summary      Registrar venta (checkout)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas del carrito, método de pago e IVA"
// @Success      200   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /sales/selling [post]
func (h *SalesHandler) Selling(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "payment_method e items (product_id y quantity positivos) son requeridos", Details: err.Error()})
	}
	out, err := h.createSale.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Error: stockErr.Error()})
		case errors.Is(err, domain.ErrInvalidClientRef):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CLIENT", Error: "el cliente referenciado no existe"})
		case errors.Is(err, domain.ErrInvalidEmployeeRef):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_EMPLOYEE", Error: "el empleado referenciado no existe"})
		case errors.Is(err, domain.ErrInvalidProductRef):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRODUCT", Error: "un producto referenciado no existe"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: "no se pudo registrar la venta", Details: err.Error()})
		}
	}
	return c.JSON(out)
}

// SalesReturns godoc
// @Summary      Procesar devolución de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnSaleRequest  true  "sale_id, reason y refound_method"
// @Success      200   {object}  dto.ReturnSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /sales/sales_returns [post]
func (h *SalesHandler) SalesReturns(c *fiber.Ctx) error {
	var in dto.ReturnSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "sale_id y reason son requeridos", Details: err.Error()})
	}
	data, err := h.returnSale.ReturnSale(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: "venta no encontrada"})
		case errors.Is(err, domain.ErrAlreadyReturned):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Error: "la venta ya fue devuelta"})
		case errors.Is(err, domain.ErrNoSaleItems):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_ITEMS", Error: "la venta no tiene líneas para devolver"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: "no se pudo procesar la devolución", Details: err.Error()})
		}
	}
	return c.JSON(dto.ReturnSaleResponse{Success: true, Data: *data})
}

// ListSales godoc
// @Summary      Listar ventas con filtros y paginación
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página (1-based)"  default(1)
// @Param        limit       query  int     false  "Tamaño de página"  default(20)
// @Param        client_id   query  int     false  "Filtrar por cliente"
// @Param        employee_id query  int     false  "Filtrar por empleado"
// @Param        date_from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to     query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        status      query  string  false  "active | returned | all"  default(all)
// @Param        search      query  string  false  "ID exacto o referencia parcial"
// @Success      200  {object}  dto.ListSalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /sales/sales_returns [get]
func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	var in dto.ListSalesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Error: "parámetros de consulta inválidos"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "status debe ser active, returned o all", Details: err.Error()})
	}
	out, err := h.listSales.ListSales(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	saleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || saleID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Error: "id de venta inválido"})
	}
	pdf, filename, err := h.receipt.DownloadReceipt(c.Context(), saleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: "no se pudo generar el recibo", Details: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

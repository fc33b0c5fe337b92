package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/inventory"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
)

// InventoryHandler maneja los movimientos manuales de inventario.
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	list     *inventory.ListMovementsUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, list *inventory.ListMovementsUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, list: list}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (entry|exit), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "product_id, type (entry|exit) y quantity positivo son requeridos", Details: err.Error()})
	}
	out, err := h.register.RegisterMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Error: stockErr.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Error: "producto no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     true   "ID del producto"
// @Param        date_from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to     query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        page        query  int     false  "Página (1-based)"  default(1)
// @Param        limit       query  int     false  "Tamaño de página"  default(20)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Error: "parámetros de consulta inválidos"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "product_id es requerido", Details: err.Error()})
	}
	out, err := h.list.ListByProduct(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Error: err.Error()})
	}
	return c.JSON(out)
}

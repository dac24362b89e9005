package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
	"jewelbox/internal/repos"
	"jewelbox/internal/validate"
)

type InventoryHandler struct {
	Inv *repos.InventoryRepo
}

// Availability reports the live stock level of a product.
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return reject(c, fiber.StatusBadRequest, "Valid product ID is required")
	}
	qty, err := h.Inv.Stock(c.UserContext(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return reject(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Availability retrieved successfully", fiber.Map{
		"product_id": id,
		"stock":      qty,
		"in_stock":   qty > 0,
	})
}

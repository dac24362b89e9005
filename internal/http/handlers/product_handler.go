package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
	"jewelbox/internal/services"
	"jewelbox/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Products retrieved successfully", ps)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return reject(c, fiber.StatusBadRequest, "Valid product ID is required")
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Product retrieved successfully", p)
}

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/services"
	"jewelbox/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// List returns the products of one category; an unknown category is an empty list.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cat := validate.Label(c.Params("category"))
	ps, err := h.Catalog.ByCategory(c.UserContext(), cat)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, fmt.Sprintf("Products in category '%s' retrieved successfully", cat), ps)
}

func (h *CategoryHandler) All(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Categories retrieved successfully", cats)
}

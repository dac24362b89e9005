package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
	"jewelbox/internal/services"
	"jewelbox/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q, valid := validate.Q(c.Params("query"))
	if !valid {
		log.Security(c, "validation.fail", map[string]any{"field": "query"})
		return reject(c, fiber.StatusBadRequest, "Search query is required")
	}
	ps, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	log.Info(c, "catalog.search", map[string]any{"q": q, "hits": len(ps)})
	return ok(c, fiber.StatusOK, fmt.Sprintf("Search results for '%s'", q), ps)
}

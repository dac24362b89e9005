package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
)

const Version = "1.0.0"

type pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	DB pinger
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, db := fiber.StatusOK, "ok"
	if err := h.DB.HealthCheck(ctx); err != nil {
		log.Error(c, "health.db.fail", err, nil)
		status, db = fiber.StatusServiceUnavailable, "unavailable"
	}
	return c.Status(status).JSON(fiber.Map{
		"success":   status == fiber.StatusOK,
		"message":   "Jewellery Shop API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"version":   Version,
		"database":  db,
	})
}

func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "Welcome to Jewellery Shop API", fiber.Map{
		"endpoints": fiber.Map{
			"health":   "/health",
			"auth":     "/api/auth",
			"products": "/api/products",
			"cart":     "/api/cart",
			"orders":   "/api/orders",
		},
		"documentation": fiber.Map{
			"auth": fiber.Map{
				"signup": "POST /api/auth/signup",
				"login":  "POST /api/auth/login",
				"verify": "POST /api/auth/verify-token",
			},
			"products": fiber.Map{
				"getAll":        "GET /api/products",
				"getById":       "GET /api/products/:id",
				"getByCategory": "GET /api/products/category/:category",
				"categories":    "GET /api/products/categories",
				"search":        "GET /api/products/search/:query",
				"availability":  "GET /api/products/:id/availability",
			},
			"cart": fiber.Map{
				"add":    "POST /api/cart/add",
				"get":    "GET /api/cart",
				"update": "PUT /api/cart/update",
				"remove": "DELETE /api/cart/remove",
				"clear":  "DELETE /api/cart/clear",
			},
			"orders": fiber.Map{
				"checkout": "POST /api/orders/checkout",
				"getAll":   "GET /api/orders",
				"getById":  "GET /api/orders/:id",
			},
		},
	})
}

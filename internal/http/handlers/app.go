package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"jewelbox/internal/config"
	applog "jewelbox/internal/log"
)

// ErrorHandler answers with the JSON envelope. Internal details are only
// exposed in development.
func ErrorHandler(dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := fiber.StatusInternalServerError, "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, msg = fe.Code, fe.Message
		}
		env := envelope{Message: msg}
		if code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
			if dev {
				env.Error = err.Error()
			}
		}
		return c.Status(code).JSON(env)
	}
}

func NewApp(cfg *config.Config, d *Deps) *fiber.App {
	dev := cfg.Development()
	app := fiber.New(fiber.Config{
		AppName:      "jewelbox",
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: ErrorHandler(dev),
	})

	// ---------- Middlewares ----------
	app.Use(recover.New(recover.Config{EnableStackTrace: dev}))
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("start", time.Now())
		return c.Next()
	})
	app.Use(logger.New())
	app.Use(helmet.New())
	corsCfg := cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}
	if corsCfg.AllowOrigins == "" {
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowOrigins, corsCfg.AllowCredentials = "*", false
	}
	app.Use(cors.New(corsCfg))

	authLimiter := limiter.New(limiter.Config{
		Max:        cfg.Server.LoginRate,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|auth"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return reject(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	})
	availLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return reject(c, fiber.StatusTooManyRequests, "Rate limit exceeded, retry soon")
		},
	})

	app.Get("/", d.HealthHandler.Index)
	app.Get("/health", d.HealthHandler.Health)

	api := app.Group("/api")

	authAPI := api.Group("/auth")
	authAPI.Post("/signup", authLimiter, d.AuthHandler.Signup)
	authAPI.Post("/login", authLimiter, d.AuthHandler.Login)
	authAPI.Post("/verify-token", d.AuthHandler.VerifyToken)

	// Fixed paths go before "/:id".
	products := api.Group("/products")
	products.Get("/", d.ProductHandler.List)
	products.Get("/categories", d.CategoryHandler.All)
	products.Get("/category/:category", d.CategoryHandler.List)
	products.Get("/search/:query?", d.SearchHandler.Search)
	products.Get("/:id/availability", availLimiter, d.InventoryHandler.Availability)
	products.Get("/:id", d.ProductHandler.Detail)

	cart := api.Group("/cart", RequireToken(d.Auth))
	cart.Post("/add", d.CartHandler.Add)
	cart.Get("/", d.CartHandler.View)
	cart.Put("/update", d.CartHandler.Update)
	cart.Delete("/remove", d.CartHandler.Remove)
	cart.Delete("/clear", d.CartHandler.Clear)

	orders := api.Group("/orders", RequireToken(d.Auth))
	orders.Post("/checkout", d.OrderHandler.Checkout)
	orders.Get("/", d.OrderHandler.History)
	orders.Get("/:id", d.OrderHandler.View)

	// 404
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(envelope{Message: "Endpoint not found", Path: c.OriginalURL()})
	})
	return app
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "jewelbox/internal/log"
	"jewelbox/internal/services"
)

// envelope is the shape of every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

func ok(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Message: msg, Data: data})
}

func reject(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(envelope{Message: msg})
}

var kindStatus = map[services.Kind]int{
	services.KindValidation: fiber.StatusBadRequest,
	services.KindAuth:       fiber.StatusUnauthorized,
	services.KindNotFound:   fiber.StatusNotFound,
	services.KindConflict:   fiber.StatusBadRequest,
	services.KindPayment:    fiber.StatusBadRequest,
}

// fail writes service errors as client errors. Anything else is handed to the
// app's ErrorHandler, which logs it and answers with a generic 500.
func fail(c *fiber.Ctx, err error) error {
	var se *services.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Kind {
	case services.KindValidation:
		applog.Security(c, "validation.fail", map[string]any{"reason": se.Message})
	case services.KindPayment:
		applog.Security(c, "order.payment.declined", map[string]any{"reason": se.Detail})
	}
	status, found := kindStatus[se.Kind]
	if !found {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(envelope{Message: se.Message, Error: se.Detail})
}

// parse decodes the JSON body into v, answering 400 on malformed input.
func parse(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"reason": "bad_body"})
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/domain"
	"jewelbox/internal/log"
	"jewelbox/internal/services"
	"jewelbox/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutInput struct {
	ShippingAddress *domain.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                  `json:"payment_method"`
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in checkoutInput
	if err := parse(c, &in); err != nil {
		return err
	}
	r, err := h.Order.Checkout(c.UserContext(), identity(c).ID, in.ShippingAddress, in.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "order.checkout", map[string]any{
		"order_id":   r.OrderID,
		"total":      r.TotalAmount.StringFixed(2),
		"payment_id": r.PaymentID,
	})
	return ok(c, fiber.StatusCreated, "Order placed successfully", r)
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.List(c.UserContext(), identity(c).ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		log.Security(c, "validation.fail", map[string]any{"field": "order"})
		return reject(c, fiber.StatusBadRequest, "Valid order ID is required")
	}
	o, err := h.Order.Get(c.UserContext(), identity(c).ID, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Order retrieved successfully", o)
}

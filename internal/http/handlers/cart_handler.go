package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
	"jewelbox/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

// number accepts 3 or "3" from JSON. Anything else decodes to -1 so the
// service rejects it with its own validation message.
type number int64

func (n *number) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(strings.Trim(string(b), `"`), 10, 64)
	if err != nil {
		v = -1
	}
	*n = number(v)
	return nil
}

type cartInput struct {
	ProductID number  `json:"product_id"`
	Quantity  *number `json:"quantity"`
}

func (in cartInput) qty() int {
	if in.Quantity == nil {
		return 1
	}
	return int(*in.Quantity)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in cartInput
	if err := parse(c, &in); err != nil {
		return err
	}
	uid := identity(c).ID
	e, err := h.Cart.Add(c.UserContext(), uid, int64(in.ProductID), in.qty())
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "cart.add", map[string]any{"product_id": e.ProductID, "quantity": e.Quantity})
	return ok(c, fiber.StatusCreated, "Item added to cart successfully", e)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cart, err := h.Cart.Get(c.UserContext(), identity(c).ID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	var in cartInput
	if err := parse(c, &in); err != nil {
		return err
	}
	if in.Quantity == nil {
		return fail(c, &services.Error{Kind: services.KindValidation, Message: "Product ID and quantity are required"})
	}
	e, err := h.Cart.Update(c.UserContext(), identity(c).ID, int64(in.ProductID), in.qty())
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "cart.update", map[string]any{"product_id": e.ProductID, "quantity": e.Quantity})
	return ok(c, fiber.StatusOK, "Cart item updated successfully", e)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var in cartInput
	if err := parse(c, &in); err != nil {
		return err
	}
	pid := int64(in.ProductID)
	if pid == 0 {
		pid = int64(c.QueryInt("product_id"))
	}
	if err := h.Cart.Remove(c.UserContext(), identity(c).ID, pid); err != nil {
		return fail(c, err)
	}
	log.Audit(c, "cart.remove", map[string]any{"product_id": pid})
	return ok(c, fiber.StatusOK, "Item removed from cart successfully", nil)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	n, err := h.Cart.Clear(c.UserContext(), identity(c).ID)
	if err != nil {
		return err
	}
	log.Audit(c, "cart.clear", map[string]any{"removed": n})
	return ok(c, fiber.StatusOK, "Cart cleared successfully", fiber.Map{"itemsRemoved": n})
}

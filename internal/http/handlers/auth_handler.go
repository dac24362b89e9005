package handlers

import (
	"github.com/gofiber/fiber/v2"

	"jewelbox/internal/log"
	"jewelbox/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in credentials
	if err := parse(c, &in); err != nil {
		return err
	}
	s, err := h.Auth.Signup(c.UserContext(), in.Email, in.Password, in.Name)
	if err != nil {
		return fail(c, err)
	}
	log.Audit(c, "auth.signup", map[string]any{"user_id": s.User.ID})
	return ok(c, fiber.StatusCreated, "User created successfully", s)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := parse(c, &in); err != nil {
		return err
	}
	s, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		if services.KindOf(err) == services.KindAuth {
			log.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		}
		return fail(c, err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"user_id": s.User.ID})
	return ok(c, fiber.StatusOK, "Login successful", s)
}

func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var in struct {
		Token string `json:"token"`
	}
	if err := parse(c, &in); err != nil {
		return err
	}
	u, err := h.Auth.VerifyToken(c.UserContext(), in.Token)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Token is valid", fiber.Map{"user": u})
}

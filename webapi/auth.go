package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/middleware"
	authsvc "github.com/nokolie/kudiwallet/pkg/service/auth"
)

type registerRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	FirstName            string `json:"first_name" validate:"required,max=64"`
	LastName             string `json:"last_name" validate:"required,max=64"`
	Phone                string `json:"phone" validate:"required,max=14"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes registers registration, login and logout under /api/auth.
func (d *Deps) AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[registerRequest](c)
		if err != nil {
			return nil
		}
		u, token, err := d.Auth.Register(c.UserContext(), authsvc.RegisterInput{
			Email:     input.Email,
			Password:  input.Password,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		})
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Registration successful", fiber.Map{
			"user":  u,
			"token": token,
		})
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[loginRequest](c)
		if err != nil {
			return nil
		}
		u, token, err := d.Auth.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"user":  u,
			"token": token,
		})
	})

	// Tokens are stateless; logout just acknowledges so clients can drop the
	// token uniformly.
	auth.Post("/logout", middleware.JwtProtected(d.Cfg.Jwt), func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	})
}

// currentUserID extracts the authenticated user's id set by the JWT
// middleware.
func (d *Deps) currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return d.Auth.CurrentUserID(token)
}

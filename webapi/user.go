package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nokolie/kudiwallet/pkg/middleware"
	usersvc "github.com/nokolie/kudiwallet/pkg/service/user"
)

type updateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Phone     *string `json:"phone" validate:"omitempty,min=7"`
}

// UserRoutes registers the profile endpoints under /api/user.
func (d *Deps) UserRoutes(app *fiber.App) {
	user := app.Group("/api/user", middleware.JwtProtected(d.Cfg.Jwt))

	user.Get("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		u, err := d.User.Get(c.UserContext(), id)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User profile", u)
	})

	user.Put("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[updateUserRequest](c)
		if err != nil {
			return nil
		}
		u, err := d.User.Update(c.UserContext(), id, usersvc.UpdateInput{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		})
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", u)
	})

	user.Delete("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		if err := d.User.Delete(c.UserContext(), id); err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	})
}

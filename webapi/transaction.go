package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nokolie/kudiwallet/pkg/middleware"
)

// TransactionRoutes registers transaction history endpoints under
// /api/transactions.
func (d *Deps) TransactionRoutes(app *fiber.App) {
	transactions := app.Group("/api/transactions", middleware.JwtProtected(d.Cfg.Jwt))

	transactions.Get("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		items, total, err := d.Transaction.List(c.UserContext(), id, page, limit)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", fiber.Map{
			"transactions": items,
			"total":        total,
			"page":         page,
			"limit":        limit,
		})
	})

	transactions.Get("/:id", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		transactionID, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction id", nil)
		}
		t, err := d.Transaction.Get(c.UserContext(), id, int64(transactionID))
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction", t)
	})
}

package webapi

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/pkg/service/account"
	"github.com/nokolie/kudiwallet/pkg/service/auth"
	"github.com/nokolie/kudiwallet/pkg/service/beneficiary"
	"github.com/nokolie/kudiwallet/pkg/service/transaction"
	"github.com/nokolie/kudiwallet/pkg/service/user"
	"github.com/nokolie/kudiwallet/pkg/service/webhook"
)

// Deps holds the services and configuration the HTTP layer depends on.
type Deps struct {
	Cfg         *config.AppConfig
	Auth        *auth.Service
	User        *user.Service
	Account     *account.Service
	Beneficiary *beneficiary.Service
	Transaction *transaction.Service
	Webhook     *webhook.Service
	// DBPing reports database reachability for the health endpoint. Nil means
	// no database check (tests).
	DBPing func(ctx context.Context) error
	Logger *slog.Logger
}

// NewApp builds the Fiber application with all routes and middleware wired.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "kudiwallet",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, err.Error(), nil)
		},
	})

	app.Use(recover.New())
	app.Use(fiberlog.New())
	app.Use(limiter.New(limiter.Config{
		Max:        d.Cfg.RateLimit.MaxRequests,
		Expiration: d.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Rate limit exceeded", nil)
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if d.DBPing != nil {
			if err := d.DBPing(c.UserContext()); err != nil {
				return ErrorResponseJSON(c, fiber.StatusServiceUnavailable, "Database unreachable", nil)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", nil)
	})

	// The webhook must be registered before the token-guarded /api/accounts
	// group: it shares the path prefix but is authenticated by signature.
	d.WebhookRoutes(app)

	d.AuthRoutes(app)
	d.UserRoutes(app)
	d.AccountRoutes(app)
	d.BeneficiaryRoutes(app)
	d.TransactionRoutes(app)

	return app
}

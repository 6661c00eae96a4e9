package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nokolie/kudiwallet/pkg/middleware"
	accountsvc "github.com/nokolie/kudiwallet/pkg/service/account"
)

type initializeCardRequest struct {
	Amount      string `json:"amount" validate:"required,numeric"`
	CardNumber  string `json:"card_number" validate:"required,credit_card"`
	CVV         string `json:"cvv" validate:"required,len=3"`
	ExpiryMonth string `json:"expiry_month" validate:"required,len=2"`
	ExpiryYear  string `json:"expiry_year" validate:"required,len=2"`
	CardPin     string `json:"card_pin" validate:"omitempty,len=4"`
}

type validateChargeRequest struct {
	OTP    string `json:"otp" validate:"required"`
	FlwRef string `json:"flw_ref" validate:"required"`
}

type bankTransferRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
}

type fundUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Narration string `json:"narration"`
}

// AccountRoutes registers wallet funding and transfer endpoints under
// /api/accounts. The webhook endpoint is registered separately because it is
// authenticated by signature, not by token.
func (d *Deps) AccountRoutes(app *fiber.App) {
	accounts := app.Group("/api/accounts", middleware.JwtProtected(d.Cfg.Jwt))

	accounts.Get("/balance", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		balance, err := d.Account.Balance(c.UserContext(), id)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Current balance", fiber.Map{
			"balance": balance,
		})
	})

	accounts.Post("/initialize-card", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[initializeCardRequest](c)
		if err != nil {
			return nil
		}
		result, err := d.Account.InitializeCard(c.UserContext(), id, accountsvc.CardChargeInput{
			Amount:      input.Amount,
			CardNumber:  input.CardNumber,
			CVV:         input.CVV,
			ExpiryMonth: input.ExpiryMonth,
			ExpiryYear:  input.ExpiryYear,
			CardPin:     input.CardPin,
			ClientIP:    c.IP(),
		})
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, result.Message, result)
	})

	accounts.Post("/validate-charge", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[validateChargeRequest](c)
		if err != nil {
			return nil
		}
		data, err := d.Account.ValidateCharge(c.UserContext(), id, input.OTP, input.FlwRef)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Charge validated", data)
	})

	accounts.Post("/bank-transfer", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[bankTransferRequest](c)
		if err != nil {
			return nil
		}
		res, err := d.Account.BankTransfer(c.UserContext(), id, input.Amount, c.IP())
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, res.Message, res.Meta.Authorization)
	})

	accounts.Post("/transfer", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[fundUserRequest](c)
		if err != nil {
			return nil
		}
		result, err := d.Account.FundUser(c.UserContext(), id, input.Email, input.Narration, input.Amount)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", result)
	})
}

// WebhookRoutes registers the gateway notification endpoint. Requests failing
// the signature check are dropped silently with no body; verified payloads
// are always acknowledged with 200 so the gateway does not retry-storm, with
// processing errors logged server-side.
func (d *Deps) WebhookRoutes(app *fiber.App) {
	app.Post("/api/accounts/webhook", func(c *fiber.Ctx) error {
		if !d.Webhook.VerifySignature(c.Get("verif-hash")) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		if err := d.Webhook.Process(c.UserContext(), c.Body()); err != nil {
			d.Logger.Error("webhook processing failed", "error", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Acknowledged", nil)
	})
}

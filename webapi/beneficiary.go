package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nokolie/kudiwallet/pkg/middleware"
	accountsvc "github.com/nokolie/kudiwallet/pkg/service/account"
	beneficiarysvc "github.com/nokolie/kudiwallet/pkg/service/beneficiary"
)

type createBeneficiaryRequest struct {
	AccountNumber   string `json:"account_number" validate:"required,numeric,min=10"`
	BankCode        string `json:"bank_code" validate:"required,numeric"`
	BankName        string `json:"bank_name"`
	BeneficiaryName string `json:"beneficiary_name" validate:"required"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
}

type withdrawRequest struct {
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Narration       string `json:"narration"`
	BeneficiaryName string `json:"beneficiary_name"`
}

// BeneficiaryRoutes registers beneficiary management and withdrawal endpoints
// under /api/beneficiaries.
func (d *Deps) BeneficiaryRoutes(app *fiber.App) {
	beneficiaries := app.Group("/api/beneficiaries", middleware.JwtProtected(d.Cfg.Jwt))

	beneficiaries.Get("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		items, total, err := d.Beneficiary.List(c.UserContext(), id, page, limit)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Beneficiaries", fiber.Map{
			"beneficiaries": items,
			"total":         total,
			"page":          page,
			"limit":         limit,
		})
	})

	beneficiaries.Post("/", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		input, err := BindAndValidate[createBeneficiaryRequest](c)
		if err != nil {
			return nil
		}
		b, err := d.Beneficiary.Create(c.UserContext(), id, beneficiarysvc.CreateInput{
			AccountNumber:   input.AccountNumber,
			BankCode:        input.BankCode,
			BankName:        input.BankName,
			BeneficiaryName: input.BeneficiaryName,
			Currency:        input.Currency,
		})
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Beneficiary created", b)
	})

	beneficiaries.Post("/:id/withdraw", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		beneficiaryID, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid beneficiary id", nil)
		}
		input, err := BindAndValidate[withdrawRequest](c)
		if err != nil {
			return nil
		}
		data, err := d.Account.Withdraw(c.UserContext(), id, accountsvc.WithdrawInput{
			BeneficiaryID:   int64(beneficiaryID),
			Amount:          input.Amount,
			Narration:       input.Narration,
			BeneficiaryName: input.BeneficiaryName,
		})
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal initiated", data)
	})

	beneficiaries.Get("/:id", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		beneficiaryID, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid beneficiary id", nil)
		}
		b, err := d.Beneficiary.Get(c.UserContext(), id, int64(beneficiaryID))
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Beneficiary", b)
	})

	beneficiaries.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := d.currentUserID(c)
		if err != nil {
			return ServiceErrorJSON(c, err)
		}
		beneficiaryID, err := c.ParamsInt("id")
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid beneficiary id", nil)
		}
		if err := d.Beneficiary.Delete(c.UserContext(), id, int64(beneficiaryID)); err != nil {
			return ServiceErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Beneficiary deleted", nil)
	})
}

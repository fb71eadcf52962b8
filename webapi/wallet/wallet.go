package wallet

import (
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	walletsvc "github.com/amirasaad/fintrack/pkg/service/wallet"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the wallet endpoints under r. Every route requires protected.
func Routes(r fiber.Router, walletSvc *walletsvc.Service, protected fiber.Handler) {
	g := r.Group("/wallets", protected)
	g.Get("/", ListWallets(walletSvc))
	g.Post("/", CreateWallet(walletSvc))
	g.Get("/total-balance", TotalBalance(walletSvc))
	g.Post("/seed", SeedWallets(walletSvc))
	g.Get("/:id", GetWallet(walletSvc))
	g.Put("/:id", UpdateWallet(walletSvc))
	g.Delete("/:id", DeleteWallet(walletSvc))
}

// ListWallets returns the caller's wallets.
// @Summary List wallets
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/wallets [get]
// @Security Bearer
func ListWallets(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		ws, err := walletSvc.List(c.UserContext(), p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toDTOs(ws))
	}
}

// GetWallet returns one wallet of the caller.
// @Summary Get wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/wallets/{id} [get]
// @Security Bearer
func GetWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		w, err := walletSvc.Get(c.UserContext(), id, p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(w))
	}
}

// CreateWallet creates a wallet with an opening balance.
// @Summary Create wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body CreateWalletRequest true "Wallet"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/wallets [post]
// @Security Bearer
func CreateWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[CreateWalletRequest](c)
		if input == nil {
			return err
		}
		balance, err := money.ParseBalance(input.Balance)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		w, err := walletSvc.Create(c.UserContext(), p.UserID, dto.WalletCreate{
			Name:    input.Name,
			Balance: balance,
			Icon:    input.Icon,
			Color:   input.Color,
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToDTO(w))
	}
}

// UpdateWallet changes a wallet. Setting balance overwrites it directly.
// @Summary Update wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body UpdateWalletRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/wallets/{id} [put]
// @Security Bearer
func UpdateWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[UpdateWalletRequest](c)
		if input == nil {
			return err
		}
		update := dto.WalletUpdate{Name: input.Name, Icon: input.Icon, Color: input.Color}
		if input.Balance != nil {
			b, err := money.ParseBalance(*input.Balance)
			if err != nil {
				return common.ErrorJSON(c, err)
			}
			update.Balance = &b
		}
		w, err := walletSvc.Update(c.UserContext(), id, p.UserID, update)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(w))
	}
}

// DeleteWallet removes a wallet; its transactions lose their wallet.
// @Summary Delete wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/wallets/{id} [delete]
// @Security Bearer
func DeleteWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		if err := walletSvc.Delete(c.UserContext(), id, p.UserID); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.MessageResponseJSON(c, fiber.StatusOK, "Wallet deleted successfully")
	}
}

// TotalBalance sums the caller's wallet balances.
// @Summary Total balance
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/wallets/total-balance [get]
// @Security Bearer
func TotalBalance(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		total, err := walletSvc.TotalBalance(c.UserContext(), p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{"totalBalance": money.Format(total)})
	}
}

// SeedWallets creates the default wallets for the caller.
// @Summary Seed default wallets
// @Tags wallets
// @Produce json
// @Success 201 {object} common.Response
// @Router /api/wallets/seed [post]
// @Security Bearer
func SeedWallets(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		ws, err := walletSvc.SeedDefaults(c.UserContext(), p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, toDTOs(ws))
	}
}

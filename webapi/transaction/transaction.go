package transaction

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the transaction endpoints under r. Every route requires protected.
func Routes(r fiber.Router, txSvc *txsvc.Service, protected fiber.Handler) {
	g := r.Group("/transactions", protected)
	g.Get("/", ListTransactions(txSvc))
	g.Post("/", CreateTransaction(txSvc))
	g.Get("/summary", Summary(txSvc))
	g.Get("/by-category", ByCategory(txSvc))
	g.Get("/:id", GetTransaction(txSvc))
	g.Put("/:id", UpdateTransaction(txSvc))
	g.Delete("/:id", DeleteTransaction(txSvc))
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, _, err := common.ParseDate(*s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid date")
	}
	return &t, nil
}

func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return &id, nil
}

func listFilter(c *fiber.Ctx, userID uuid.UUID) (dto.TransactionFilter, error) {
	f := dto.TransactionFilter{UserID: userID}
	if s := c.Query("type"); s != "" {
		t, err := domain.ParseTransactionType(s)
		if err != nil {
			return f, err
		}
		f.Type = &t
	}
	var err error
	if f.WalletID, err = queryUUID(c, "walletId"); err != nil {
		return f, err
	}
	if f.CategoryID, err = queryUUID(c, "categoryId"); err != nil {
		return f, err
	}
	f.DateRange, err = common.DateRangeQuery(c)
	return f, err
}

// ListTransactions returns a filtered page of the caller's transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param type query string false "income or expense"
// @Param walletId query string false "Wallet ID"
// @Param categoryId query string false "Category ID"
// @Param startDate query string false "RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC 3339 or YYYY-MM-DD, inclusive"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Router /api/transactions [get]
// @Security Bearer
func ListTransactions(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		filter, err := listFilter(c, p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		page, err := txSvc.List(
			c.UserContext(),
			filter,
			c.QueryInt("page", txsvc.DefaultPage),
			c.QueryInt("limit", txsvc.DefaultLimit),
		)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.PaginatedResponseJSON(c, toDTOs(page.Items), page.Pagination)
	}
}

// GetTransaction returns one transaction with its wallet and category.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		tx, err := txSvc.Get(c.UserContext(), id, p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(tx))
	}
}

// CreateTransaction records income or expense and updates its wallet.
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.ParseAmount(input.Amount)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		date, err := parseOptionalDate(input.Date)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		tx, err := txSvc.Create(c.UserContext(), p.UserID, txsvc.CreateInput{
			WalletID:    input.WalletID,
			CategoryID:  input.CategoryID,
			Type:        domain.TransactionType(input.Type),
			Amount:      amount,
			Description: input.Description,
			Date:        date,
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToDTO(tx))
	}
}

// UpdateTransaction changes a transaction and moves its wallet effect.
// @Summary Update transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		in := txsvc.UpdateInput{
			WalletID:    txsvc.Ref{Set: input.WalletID.Set, ID: input.WalletID.ID},
			CategoryID:  txsvc.Ref{Set: input.CategoryID.Set, ID: input.CategoryID.ID},
			Description: input.Description,
		}
		if input.Type != nil {
			t := domain.TransactionType(*input.Type)
			in.Type = &t
		}
		if input.Amount != nil {
			amount, err := money.ParseAmount(*input.Amount)
			if err != nil {
				return common.ErrorJSON(c, err)
			}
			in.Amount = &amount
		}
		if in.Date, err = parseOptionalDate(input.Date); err != nil {
			return common.ErrorJSON(c, err)
		}
		tx, err := txSvc.Update(c.UserContext(), id, p.UserID, in)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(tx))
	}
}

// DeleteTransaction removes a transaction and reverses its wallet effect.
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		if err := txSvc.Delete(c.UserContext(), id, p.UserID); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.MessageResponseJSON(c, fiber.StatusOK, "Transaction deleted successfully")
	}
}

// Summary totals income and expense in an optional date range.
// @Summary Income and expense summary
// @Tags transactions
// @Produce json
// @Param startDate query string false "RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC 3339 or YYYY-MM-DD, inclusive"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Router /api/transactions/summary [get]
// @Security Bearer
func Summary(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		dr, err := common.DateRangeQuery(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		s, err := txSvc.Summary(c.UserContext(), p.UserID, dr)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toSummaryDTO(s))
	}
}

// ByCategory totals amounts per category and type.
// @Summary Totals by category
// @Tags transactions
// @Produce json
// @Param startDate query string false "RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "RFC 3339 or YYYY-MM-DD, inclusive"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Router /api/transactions/by-category [get]
// @Security Bearer
func ByCategory(txSvc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		dr, err := common.DateRangeQuery(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		rows, err := txSvc.ByCategory(c.UserContext(), p.UserID, dr)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toCategoryTotalDTOs(rows))
	}
}

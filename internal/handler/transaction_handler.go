package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/internal/service"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

type TransactionHandler struct {
	service service.TransactionService
	logger  *logger.Logger
}

func NewTransactionHandler(svc service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  log,
	}
}

type transactionRequest struct {
	Code         string          `json:"code"`
	Date         string          `json:"date"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Kind         string          `json:"kind"`
	GoldType     string          `json:"gold_type"`
	CurrencyCode string          `json:"currency_code"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

func (r *transactionRequest) toForm() (domain.TransactionForm, error) {
	form := domain.TransactionForm{
		Code:         r.Code,
		UnitPrice:    r.UnitPrice,
		Quantity:     r.Quantity,
		Kind:         domain.TransactionKind(r.Kind),
		GoldType:     r.GoldType,
		CurrencyCode: r.CurrencyCode,
		ExchangeRate: r.ExchangeRate,
	}

	if r.Date != "" {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return domain.TransactionForm{}, domain.NewValidationError("date", "date must be in YYYY-MM-DD format")
		}
		form.Date = date
	}

	return form, nil
}

func transactionResponse(tx *domain.Transaction) map[string]interface{} {
	resp := map[string]interface{}{
		"code":       tx.Code,
		"date":       tx.Date.Format(time.DateOnly),
		"unit_price": tx.UnitPrice,
		"quantity":   tx.Quantity,
		"kind":       tx.Kind,
		"amount":     tx.Amount(),
	}

	switch tx.Kind {
	case domain.KindGold:
		resp["gold_type"] = tx.GoldType
	case domain.KindCurrency:
		resp["currency_code"] = tx.CurrencyCode
		resp["exchange_rate"] = tx.ExchangeRate
	}

	return resp
}

func transactionListResponse(transactions []domain.Transaction) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(transactions))
	for i := range transactions {
		items = append(items, transactionResponse(&transactions[i]))
	}
	return map[string]interface{}{
		"items": items,
		"total": len(transactions),
	}
}

func (h *TransactionHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	form, err := req.toForm()
	if err != nil {
		return writeDomainError(c, err)
	}

	tx, err := h.service.Add(ctx, form)
	if err != nil {
		h.logger.Warn(ctx, "Add transaction rejected",
			"error", err,
		)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, transactionResponse(tx))
}

func (h *TransactionHandler) Edit(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}

	form, err := req.toForm()
	if err != nil {
		return writeDomainError(c, err)
	}

	tx, err := h.service.Edit(ctx, code, form)
	if err != nil {
		h.logger.Warn(ctx, "Edit transaction rejected",
			"code", code,
			"error", err,
		)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, transactionResponse(tx))
}

func (h *TransactionHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	deleted, err := h.service.Remove(ctx, code)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":    domain.NormalizeCode(code),
		"deleted": deleted,
	})
}

func (h *TransactionHandler) GetByCode(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")

	tx, err := h.service.FindByCode(ctx, code)
	if err != nil {
		return writeDomainError(c, err)
	}
	if tx == nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error": "transaction not found",
			"code":  domain.ErrCodeNotFound,
		})
	}

	return c.JSON(http.StatusOK, transactionResponse(tx))
}

// List serves the filtered reads: ?kind=, ?from=&to=, ?min_unit_price=, or
// everything when no filter is given.
func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if kind := c.QueryParam("kind"); kind != "" {
		transactions, err := h.service.FindByKind(ctx, domain.TransactionKind(kind))
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, transactionListResponse(transactions))
	}

	fromParam, toParam := c.QueryParam("from"), c.QueryParam("to")
	if fromParam != "" || toParam != "" {
		from, err := time.Parse(time.DateOnly, fromParam)
		if err != nil {
			return writeDomainError(c, domain.NewValidationError("from", "from must be in YYYY-MM-DD format"))
		}
		to, err := time.Parse(time.DateOnly, toParam)
		if err != nil {
			return writeDomainError(c, domain.NewValidationError("to", "to must be in YYYY-MM-DD format"))
		}
		transactions, err := h.service.FindByDateRange(ctx, from, to)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, transactionListResponse(transactions))
	}

	if minParam := c.QueryParam("min_unit_price"); minParam != "" {
		threshold, err := decimal.NewFromString(minParam)
		if err != nil {
			return writeDomainError(c, domain.NewValidationError("min_unit_price", "min_unit_price must be a number"))
		}
		transactions, err := h.service.FindByUnitPriceGreaterThan(ctx, threshold)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, transactionListResponse(transactions))
	}

	transactions, err := h.service.GetAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, transactionListResponse(transactions))
}

func (h *TransactionHandler) HighValue(c echo.Context) error {
	ctx := c.Request().Context()

	transactions, err := h.service.GetHighValueTransactions(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, transactionListResponse(transactions))
}

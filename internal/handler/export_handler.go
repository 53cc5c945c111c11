package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thanhvdo/goldfx-be/internal/service"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

type ExportHandler struct {
	transactions service.TransactionService
	statistics   service.StatisticsService
	export       service.ExportService
	logger       *logger.Logger
}

func NewExportHandler(
	transactions service.TransactionService,
	statistics service.StatisticsService,
	export service.ExportService,
	log *logger.Logger,
) *ExportHandler {
	return &ExportHandler{
		transactions: transactions,
		statistics:   statistics,
		export:       export,
		logger:       log,
	}
}

func (h *ExportHandler) Transactions(c echo.Context) error {
	ctx := c.Request().Context()

	transactions, err := h.transactions.GetAll(ctx)
	if err != nil {
		return writeDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.export.WriteTransactions(ctx, c.Response(), transactions); err != nil {
		h.logger.Error(ctx, "Failed to write transaction export",
			"error", err,
		)
		return err
	}

	return nil
}

// Statistics exports the summary for the same ?scope= parameters the
// statistics endpoint accepts.
func (h *ExportHandler) Statistics(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := summarizeScope(c, h.statistics)
	if err != nil {
		return writeDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="statistics.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.export.WriteSummary(ctx, c.Response(), summary); err != nil {
		h.logger.Error(ctx, "Failed to write statistics export",
			"error", err,
		)
		return err
	}

	return nil
}

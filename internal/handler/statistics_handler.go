package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thanhvdo/goldfx-be/internal/domain"
	"github.com/thanhvdo/goldfx-be/internal/service"
	"github.com/thanhvdo/goldfx-be/pkg/logger"
)

type StatisticsHandler struct {
	service service.StatisticsService
	logger  *logger.Logger
}

func NewStatisticsHandler(svc service.StatisticsService, log *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: svc,
		logger:  log,
	}
}

// summarizeScope resolves the ?scope= query (all, today, month, range) to
// the matching statistics query.
func summarizeScope(c echo.Context, svc service.StatisticsService) (*domain.Summary, error) {
	ctx := c.Request().Context()

	switch c.QueryParam("scope") {
	case "", "all":
		return svc.Summarize(ctx)

	case "today":
		return svc.SummarizeToday(ctx)

	case "month":
		now := time.Now()
		year, month := now.Year(), now.Month()
		if yearParam := c.QueryParam("year"); yearParam != "" {
			parsed, err := strconv.Atoi(yearParam)
			if err != nil {
				return nil, domain.NewValidationError("year", "year must be a number")
			}
			year = parsed
		}
		if monthParam := c.QueryParam("month"); monthParam != "" {
			parsed, err := strconv.Atoi(monthParam)
			if err != nil || parsed < 1 || parsed > 12 {
				return nil, domain.NewValidationError("month", "month must be between 1 and 12")
			}
			month = time.Month(parsed)
		}
		return svc.SummarizeMonth(ctx, year, month)

	case "range":
		from, err := time.Parse(time.DateOnly, c.QueryParam("from"))
		if err != nil {
			return nil, domain.NewValidationError("from", "from must be in YYYY-MM-DD format")
		}
		to, err := time.Parse(time.DateOnly, c.QueryParam("to"))
		if err != nil {
			return nil, domain.NewValidationError("to", "to must be in YYYY-MM-DD format")
		}
		return svc.SummarizeRange(ctx, from, to)

	default:
		return nil, domain.NewValidationError("scope", "scope must be all, today, month or range")
	}
}

func summaryResponse(summary *domain.Summary) map[string]interface{} {
	return map[string]interface{}{
		"gold_count":            summary.GoldCount,
		"currency_count":        summary.CurrencyCount,
		"avg_currency_amount":   summary.AvgCurrencyAmount,
		"high_value_count":      summary.HighValueCount,
		"total_gold_amount":     summary.TotalGoldAmount,
		"total_currency_amount": summary.TotalCurrencyAmount,
		"total_amount":          summary.TotalAmount(),
	}
}

func (h *StatisticsHandler) Get(c echo.Context) error {
	summary, err := summarizeScope(c, h.service)
	if err != nil {
		h.logger.Warn(c.Request().Context(), "Statistics query rejected",
			"error", err,
		)
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, summaryResponse(summary))
}

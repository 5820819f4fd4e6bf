package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/dto"
	"github.com/jomonylw/flow-balance-sub006/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and the
// read models built on top of them (balances, period totals, trends).
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvc
	trendService   portssvc.TrendSvc
}

func newAccountHandler(as portssvc.AccountSvcFacade, bs portssvc.BalanceSvc, ts portssvc.TrendSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		balanceService: bs,
		trendService:   ts,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvc, trendService portssvc.TrendSvc) {
	h := newAccountHandler(accountService, balanceService, trendService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/period-total", h.getPeriodTotal)
		accounts.GET("/:id/trend", h.getTrend)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to create account", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getBalance reconstructs a stock account's balances per transaction
// currency, as of ?asOf=YYYY-MM-DD (default today).
func (h *accountHandler) getBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID := c.Param("id")
	balances, err := h.balanceService.BalancesAsOf(c.Request.Context(), userID, accountID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		AsOf:      asOf.Format("2006-01-02"),
		Balances:  balances,
		HasData:   len(balances) > 0,
	})
}

// getPeriodTotal sums a flow account's entries with ?from= and ?to=
// (inclusive, YYYY-MM-DD).
func (h *accountHandler) getPeriodTotal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, err := requireDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := requireDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return
	}

	accountID := c.Param("id")
	total, err := h.balanceService.SumInPeriod(c.Request.Context(), userID, accountID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PeriodTotalResponse{
		AccountID: accountID,
		FromDate:  from.Format("2006-01-02"),
		ToDate:    to.Format("2006-01-02"),
		Total:     total,
	})
}

func (h *accountHandler) getTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for Trend", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	accountID := c.Param("id")
	points, err := h.trendService.BuildSeries(
		c.Request.Context(),
		userID,
		accountID,
		domain.TrendRange(q.Range),
		domain.Granularity(q.Granularity),
		q.DisplayCurrencyCode,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrendSeriesResponse(accountID, q, points))
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter, falling back
// to def when absent.
func parseDateQuery(c *gin.Context, name string, def time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, &queryDateError{name: name}
	}
	return parsed, nil
}

// requireDateQuery reads a mandatory YYYY-MM-DD query parameter.
func requireDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, &queryDateError{name: name, missing: true}
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, &queryDateError{name: name}
	}
	return parsed, nil
}

type queryDateError struct {
	name    string
	missing bool
}

func (e *queryDateError) Error() string {
	if e.missing {
		return "missing required query parameter '" + e.name + "'"
	}
	return "invalid '" + e.name + "' date, expected YYYY-MM-DD"
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// reportingHandler handles HTTP requests for the reporting engine.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/profit-loss", h.profitAndLoss)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/ledger/:accountID", h.ledger)
		reports.GET("/aging", h.aging)
	}
}

// parseDateQuery reads a yyyy-mm-dd query parameter. A missing parameter
// yields the zero time; services decide whether that is acceptable.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// trialBalance godoc
// @Summary Trial balance
// @Description Per-account debit/credit totals as of a date; total debits equal total credits
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Missing or invalid date"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Assets, liabilities, and equity as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// profitAndLoss godoc
// @Summary Profit and loss
// @Description Income and expense activity over a period
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Missing from date"
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to generate profit and loss")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// cashFlow godoc
// @Summary Cash flow
// @Description Inflow, outflow, and net movement across cash accounts over a period
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.CashFlowResponse
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to generate cash flow")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report))
}

// ledger godoc
// @Summary Account ledger
// @Description Chronological entries for one account with running balances
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /reports/ledger/{accountID} [get]
func (h *reportingHandler) ledger(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	var fromPtr, toPtr *time.Time
	if !from.IsZero() {
		fromPtr = &from
	}
	if !to.IsZero() {
		toPtr = &to
	}

	report, err := h.reportingService.Ledger(c.Request.Context(), c.Param("accountID"), fromPtr, toPtr)
	if err != nil {
		respondServiceError(c, err, "Failed to generate ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(report))
}

// aging godoc
// @Summary Aging report
// @Description Buckets receivable or payable entries by days outstanding
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Report date (YYYY-MM-DD)"
// @Param   kind query string true "RECEIVABLE or PAYABLE"
// @Success 200 {object} dto.AgingResponse
// @Failure 400 {object} map[string]string "Missing date or invalid kind"
// @Security BearerAuth
// @Router /reports/aging [get]
func (h *reportingHandler) aging(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.Aging(c.Request.Context(), asOf, domain.AgingKind(c.Query("kind")))
	if err != nil {
		respondServiceError(c, err, "Failed to generate aging report")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgingResponse(report))
}

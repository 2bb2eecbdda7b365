package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/services"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// monthRange returns the period bounds from query params, defaulting to
// the current month
func monthRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	if s, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		start = s
	}
	if e, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		end = e.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return start, end
}

// @Summary List Financial Entries
// @Description Get a paginated ledger view with filters
// @Tags Finance
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param type query string false "income or expense"
// @Param status query string false "paid or pending"
// @Param category query string false "Category filter"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /financial_entries [get]
func (h *FinanceHandler) Index(c *gin.Context) {
	query := &repository.FinancialQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Type = c.Query("type")
	query.Status = c.Query("status")
	query.Category = c.Query("category")
	query.OrderID = c.Query("order_id")
	if accountID, err := strconv.ParseUint(c.Query("account_id"), 10, 32); err == nil {
		query.AccountID = uint(accountID)
	}
	if start, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		query.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		query.EndDate = &end
	}

	entries, total, err := h.financeService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Financial Entry
// @Tags Finance
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} models.FinancialEntry
// @Security BearerAuth
// @Router /financial_entries/{entry_id} [get]
func (h *FinanceHandler) Show(c *gin.Context) {
	entry, err := h.financeService.FindByID(c.Request.Context(), c.Param("entry_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lançamento não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// @Summary Create Financial Entry
// @Description Record a manual income or expense, optionally recurring
// @Tags Finance
// @Accept json
// @Produce json
// @Param entry body services.FinancialEntryInput true "Entry Data"
// @Success 201 {object} models.FinancialEntry
// @Security BearerAuth
// @Router /financial_entries [post]
func (h *FinanceHandler) Create(c *gin.Context) {
	var input services.FinancialEntryInput
	if err := BindNestedOrFlat(c, "entry", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do lançamento inválidos"})
		return
	}
	if input.Description == "" || input.Amount <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Descrição e valor positivo são obrigatórios"})
		return
	}

	entry, err := h.financeService.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// @Summary Update Financial Entry
// @Description Edit a manual entry; order-derived rows are read-only
// @Tags Finance
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param entry body services.FinancialEntryInput true "Entry Data"
// @Success 200 {object} models.FinancialEntry
// @Security BearerAuth
// @Router /financial_entries/{entry_id} [put]
func (h *FinanceHandler) Update(c *gin.Context) {
	var input services.FinancialEntryInput
	if err := BindNestedOrFlat(c, "entry", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do lançamento inválidos"})
		return
	}

	entry, err := h.financeService.Update(c.Request.Context(), c.Param("entry_id"), &input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lançamento não encontrado"})
			return
		}
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Lançamentos de pedidos não podem ser editados"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

type markPaidRequest struct {
	AccountID *uint  `json:"account_id"`
	Method    string `json:"method"`
}

// @Summary Mark Entry Paid
// @Description Settle a pending entry
// @Tags Finance
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} models.FinancialEntry
// @Security BearerAuth
// @Router /financial_entries/{entry_id}/pay [post]
func (h *FinanceHandler) MarkPaid(c *gin.Context) {
	var req markPaidRequest
	_ = c.ShouldBindJSON(&req)

	entry, err := h.financeService.MarkPaid(c.Request.Context(), c.Param("entry_id"), req.AccountID, req.Method)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lançamento não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// @Summary Delete Financial Entry
// @Tags Finance
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /financial_entries/{entry_id} [delete]
func (h *FinanceHandler) Destroy(c *gin.Context) {
	if err := h.financeService.Delete(c.Request.Context(), c.Param("entry_id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lançamento não encontrado"})
			return
		}
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Lançamentos de pedidos não podem ser removidos"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lançamento removido"})
}

// @Summary Cash Flow Summary
// @Description Aggregate paid and pending movement over a period, with a
// per-category breakdown of the paid entries
// @Tags Finance
// @Produce json
// @Param start_date query string false "Period start (YYYY-MM-DD)"
// @Param end_date query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /financial_entries/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	start, end := monthRange(c)
	summary, err := h.financeService.Summary(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	byCategory, err := h.financeService.SummaryByCategory(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"by_category": byCategory,
	})
}

// @Summary Account Balances
// @Description Compute every account balance from paid entries
// @Tags Finance
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /financial_entries/balances [get]
func (h *FinanceHandler) Balances(c *gin.Context) {
	balances, err := h.financeService.AccountBalances(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// @Summary Upcoming Dues
// @Description List pending entries due inside the range
// @Tags Finance
// @Produce json
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /financial_entries/due [get]
func (h *FinanceHandler) Due(c *gin.Context) {
	start, end := monthRange(c)
	entries, err := h.financeService.DueBetween(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

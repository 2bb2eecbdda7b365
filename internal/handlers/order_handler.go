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

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrClientRequired),
		errors.Is(err, services.ErrItemsRequired),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidInstallment),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrNoPhone):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// @Summary List Orders
// @Description Get a paginated list of orders (active board or archive)
// @Tags Orders
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param archived query bool false "Archive view"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) Index(c *gin.Context) {
	query := &repository.OrderQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	query.Archived = c.Query("archived") == "true"
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if clientID, err := strconv.ParseUint(c.Query("client_id"), 10, 32); err == nil {
		query.ClientID = uint(clientID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}

	orders, total, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]interface{}, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, order.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Order Stats
// @Description Get order count statistics per status plus the archive size
// @Tags Orders
// @Produce json
// @Success 200 {object} repository.OrderStats
// @Security BearerAuth
// @Router /orders/stats [get]
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Delivery Calendar
// @Description Get active orders with a delivery date inside the range
// @Tags Orders
// @Produce json
// @Param start query string true "Range start (YYYY-MM-DD)"
// @Param end query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders/calendar [get]
func (h *OrderHandler) Calendar(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inicial inválida, use YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data final inválida, use YYYY-MM-DD"})
		return
	}

	orders, err := h.orderService.Calendar(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]interface{}, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, order.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"orders": responses})
}

// @Summary Get Order
// @Description Get an order by ID
// @Tags Orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} models.OrderResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{order_id} [get]
func (h *OrderHandler) Show(c *gin.Context) {
	order, err := h.orderService.FindByID(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

// @Summary Create Order
// @Description Create a new order with items and optional installment plan
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body services.OrderInput true "Order Data"
// @Success 201 {object} models.OrderResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var input services.OrderInput
	if err := BindNestedOrFlat(c, "order", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do pedido inválidos"})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order.ToResponse()})
}

// @Summary Update Order
// @Description Edit an order, keeping its number and paid installments
// @Tags Orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param order body services.OrderInput true "Order Data"
// @Success 200 {object} models.OrderResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{order_id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	var input services.OrderInput
	if err := BindNestedOrFlat(c, "order", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do pedido inválidos"})
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), c.Param("order_id"), &input)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Change Order Status
// @Description Move the order on the production board
// @Tags Orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param status body changeStatusRequest true "Target status"
// @Success 200 {object} models.OrderResponse
// @Security BearerAuth
// @Router /orders/{order_id}/status [patch]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status é obrigatório"})
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), c.Param("order_id"), req.Status)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

type paymentRequest struct {
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Method    string     `json:"method"`
	AccountID *uint      `json:"account_id"`
	Date      *time.Time `json:"date"`
}

// @Summary Register Payment
// @Description Credit a payment against the order balance
// @Tags Orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param payment body paymentRequest true "Payment Data"
// @Success 200 {object} models.OrderResponse
// @Security BearerAuth
// @Router /orders/{order_id}/payments [post]
func (h *OrderHandler) RegisterPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor do pagamento inválido"})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	order, err := h.orderService.RegisterPayment(c.Request.Context(), c.Param("order_id"),
		req.Amount, req.Method, req.AccountID, date)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

// @Summary Pay Installment
// @Description Settle one installment of the plan (idempotent per index)
// @Tags Orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param index path int true "Installment index (1-based)"
// @Param payment body paymentRequest true "Payment Data"
// @Success 200 {object} models.OrderResponse
// @Security BearerAuth
// @Router /orders/{order_id}/installments/{index}/pay [post]
func (h *OrderHandler) PayInstallment(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parcela inválida"})
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valor do pagamento inválido"})
		return
	}

	order, err := h.orderService.PayInstallment(c.Request.Context(), c.Param("order_id"),
		index, req.Amount, req.Method, req.AccountID)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

// @Summary Installment Schedule
// @Description Get the computed due-date schedule of an order
// @Tags Orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders/{order_id}/schedule [get]
func (h *OrderHandler) Schedule(c *gin.Context) {
	schedule, err := h.orderService.Schedule(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// @Summary WhatsApp Link
// @Description Build a wa.me link with a status message for the client
// @Tags Orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{order_id}/whatsapp [get]
func (h *OrderHandler) WhatsAppLink(c *gin.Context) {
	link, err := h.orderService.WhatsAppLink(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link})
}

// @Summary Delete Order
// @Description Remove the order and every ledger row derived from it
// @Tags Orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{order_id} [delete]
func (h *OrderHandler) Destroy(c *gin.Context) {
	if err := h.orderService.Delete(c.Request.Context(), c.Param("order_id")); err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pedido removido"})
}

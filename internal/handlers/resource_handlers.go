package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/services"
)

func listQueryFrom(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	return query
}

func paginationFor(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}

func uintParam(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id)
}

// ClientHandler serves the customer registry
type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// @Summary List Clients
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param search_term query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	query := listQueryFrom(c)
	clients, total, err := h.clientService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "pagination": paginationFor(query, total)})
}

// @Summary Get Client
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} models.Client
// @Security BearerAuth
// @Router /clients/{client_id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	client, err := h.clientService.FindByID(c.Request.Context(), uintParam(c, "client_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary Create Client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body models.Client true "Client Data"
// @Success 201 {object} models.Client
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var client models.Client
	if err := BindNestedOrFlat(c, "client", &client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do cliente inválidos"})
		return
	}
	if err := h.clientService.Create(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// @Summary Update Client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client_id path int true "Client ID"
// @Param client body models.Client true "Client Data"
// @Success 200 {object} models.Client
// @Security BearerAuth
// @Router /clients/{client_id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	client, err := h.clientService.FindByID(c.Request.Context(), uintParam(c, "client_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}
	if err := BindNestedOrFlat(c, "client", client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do cliente inválidos"})
		return
	}
	if err := h.clientService.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary Delete Client
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id} [delete]
func (h *ClientHandler) Destroy(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), uintParam(c, "client_id")); err != nil {
		if errors.Is(err, services.ErrClientHasOrders) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido"})
}

// ProductHandler serves the product catalog
type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// @Summary List Products
// @Tags Products
// @Produce json
// @Param active query bool false "Only active products"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) Index(c *gin.Context) {
	query := listQueryFrom(c)
	if active := c.Query("active"); active != "" {
		query.Filters["active"] = active
	}
	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "pagination": paginationFor(query, total)})
}

// @Summary Create Product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product Data"
// @Success 201 {object} models.Product
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := BindNestedOrFlat(c, "product", &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do produto inválidos"})
		return
	}
	if err := h.productService.Create(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// @Summary Update Product
// @Tags Products
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param product body models.Product true "Product Data"
// @Success 200 {object} models.Product
// @Security BearerAuth
// @Router /products/{product_id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	product, err := h.productService.FindByID(c.Request.Context(), uintParam(c, "product_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	if err := BindNestedOrFlat(c, "product", product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do produto inválidos"})
		return
	}
	if err := h.productService.Update(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// @Summary Deactivate Product
// @Description Hide a product from the catalog keeping order snapshots
// @Tags Products
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /products/{product_id}/deactivate [patch]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	if err := h.productService.Deactivate(c.Request.Context(), uintParam(c, "product_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produto desativado"})
}

// @Summary Delete Product
// @Tags Products
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /products/{product_id} [delete]
func (h *ProductHandler) Destroy(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), uintParam(c, "product_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produto removido"})
}

// SupplyHandler serves the stock registry
type SupplyHandler struct {
	supplyService *services.SupplyService
}

func NewSupplyHandler(supplyService *services.SupplyService) *SupplyHandler {
	return &SupplyHandler{supplyService: supplyService}
}

// @Summary List Supplies
// @Tags Supplies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /supplies [get]
func (h *SupplyHandler) Index(c *gin.Context) {
	query := listQueryFrom(c)
	supplies, total, err := h.supplyService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplies": supplies, "pagination": paginationFor(query, total)})
}

// @Summary Low Stock
// @Description List supplies at or below the minimum quantity
// @Tags Supplies
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /supplies/low_stock [get]
func (h *SupplyHandler) LowStock(c *gin.Context) {
	supplies, err := h.supplyService.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplies": supplies})
}

// @Summary Create Supply
// @Tags Supplies
// @Accept json
// @Produce json
// @Param supply body models.Supply true "Supply Data"
// @Success 201 {object} models.Supply
// @Security BearerAuth
// @Router /supplies [post]
func (h *SupplyHandler) Create(c *gin.Context) {
	var supply models.Supply
	if err := BindNestedOrFlat(c, "supply", &supply); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do insumo inválidos"})
		return
	}
	if err := h.supplyService.Create(c.Request.Context(), &supply); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supply": supply})
}

// @Summary Update Supply
// @Tags Supplies
// @Accept json
// @Produce json
// @Param supply_id path int true "Supply ID"
// @Param supply body models.Supply true "Supply Data"
// @Success 200 {object} models.Supply
// @Security BearerAuth
// @Router /supplies/{supply_id} [put]
func (h *SupplyHandler) Update(c *gin.Context) {
	supply, err := h.supplyService.FindByID(c.Request.Context(), uintParam(c, "supply_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}
	if err := BindNestedOrFlat(c, "supply", supply); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do insumo inválidos"})
		return
	}
	if err := h.supplyService.Update(c.Request.Context(), supply); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supply": supply})
}

type adjustStockRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

// @Summary Adjust Stock
// @Description Add or subtract stock for a supply
// @Tags Supplies
// @Accept json
// @Produce json
// @Param supply_id path int true "Supply ID"
// @Param adjustment body adjustStockRequest true "Stock delta"
// @Success 200 {object} models.Supply
// @Security BearerAuth
// @Router /supplies/{supply_id}/adjust [post]
func (h *SupplyHandler) Adjust(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ajuste inválido"})
		return
	}
	supply, err := h.supplyService.Adjust(c.Request.Context(), uintParam(c, "supply_id"), req.Delta)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supply": supply})
}

// @Summary Delete Supply
// @Tags Supplies
// @Produce json
// @Param supply_id path int true "Supply ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /supplies/{supply_id} [delete]
func (h *SupplyHandler) Destroy(c *gin.Context) {
	if err := h.supplyService.Delete(c.Request.Context(), uintParam(c, "supply_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Insumo removido"})
}

// AccountHandler serves the payment account registry
type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// @Summary List Accounts
// @Tags Accounts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) Index(c *gin.Context) {
	accounts, err := h.accountService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// @Summary Create Account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param account body models.Account true "Account Data"
// @Success 201 {object} models.Account
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var account models.Account
	if err := BindNestedOrFlat(c, "account", &account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da conta inválidos"})
		return
	}
	if err := h.accountService.Create(c.Request.Context(), &account); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// @Summary Update Account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param account_id path int true "Account ID"
// @Param account body models.Account true "Account Data"
// @Success 200 {object} models.Account
// @Security BearerAuth
// @Router /accounts/{account_id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	account, err := h.accountService.FindByID(c.Request.Context(), uintParam(c, "account_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conta não encontrada"})
		return
	}
	if err := BindNestedOrFlat(c, "account", account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da conta inválidos"})
		return
	}
	if err := h.accountService.Update(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

// @Summary Delete Account
// @Tags Accounts
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /accounts/{account_id} [delete]
func (h *AccountHandler) Destroy(c *gin.Context) {
	if err := h.accountService.Delete(c.Request.Context(), uintParam(c, "account_id")); err != nil {
		if errors.Is(err, services.ErrAccountInUse) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conta removida"})
}

// AuditHandler serves the audit trail
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Tags Audit
// @Produce json
// @Param entity query string false "Entity filter"
// @Param action query string false "Action filter"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audit_logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQueryFrom(c)
	if entity := c.Query("entity"); entity != "" {
		query.Filters["entity"] = entity
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		query.Filters["entity_id"] = entityID
	}
	if action := c.Query("action"); action != "" {
		query.Filters["action"] = action
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": logs, "pagination": paginationFor(query, total)})
}

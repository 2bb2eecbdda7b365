package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/graficaflow/grafica-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// @Summary Order PDF
// @Description Download the printable order summary
// @Tags Reports
// @Produce application/pdf
// @Param order_id path string true "Order ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/orders/{order_id}/pdf [get]
func (h *ReportHandler) OrderPDF(c *gin.Context) {
	buf, err := h.reportService.GenerateOrderPDF(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("pedido_%s.pdf", c.Param("order_id"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Service Order PDF
// @Description Download the shop-floor service order
// @Tags Reports
// @Produce application/pdf
// @Param order_id path string true "Order ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/orders/{order_id}/service_order [get]
func (h *ReportHandler) ServiceOrderPDF(c *gin.Context) {
	buf, err := h.reportService.GenerateServiceOrderPDF(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("ordem_servico_%s.pdf", c.Param("order_id"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Orders CSV
// @Description Download the orders matching the filters as CSV
// @Tags Reports
// @Produce text/csv
// @Param archived query bool false "Archive view"
// @Param status query string false "Filter by status"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/orders/csv [get]
func (h *ReportHandler) OrdersCSV(c *gin.Context) {
	query := &repository.OrderQuery{ListQuery: repository.NewListQuery()}
	query.PerPage = 10000
	query.Status = c.Query("status")
	query.Archived = c.Query("archived") == "true"
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query.Filters["end_date"] = endDate
	}

	buf, err := h.reportService.GenerateOrdersCSV(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("pedidos_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary Cash Flow Export
// @Description Download the period ledger as csv, xlsx or pdf
// @Tags Reports
// @Produce json
// @Param format path string true "csv, xlsx or pdf"
// @Param start_date query string false "Period start (YYYY-MM-DD)"
// @Param end_date query string false "Period end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/cash_flow/{format} [get]
func (h *ReportHandler) CashFlowExport(c *gin.Context) {
	start, end := monthRange(c)

	var data []byte
	var filename string
	var contentType string
	var err error

	switch c.Param("format") {
	case "csv":
		data, filename, err = h.exportService.ExportCashFlowCSV(c.Request.Context(), start, end)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.ExportCashFlowXLSX(c.Request.Context(), start, end)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportService.ExportCashFlowPDF(c.Request.Context(), start, end)
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato inválido, use csv, xlsx ou pdf"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/jung-kurt/gofpdf"
)

type ReportService struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	settingsSvc *SettingsService
	scheduleSvc *ScheduleService
}

func NewReportService(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	settingsSvc *SettingsService,
	scheduleSvc *ScheduleService,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		settingsSvc: settingsSvc,
		scheduleSvc: scheduleSvc,
	}
}

// GenerateOrderPDF builds the printable order summary: company header,
// client block, item table, payment summary and installment schedule
func (s *ReportService) GenerateOrderPDF(ctx context.Context, orderID string) (*bytes.Buffer, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, order.ClientID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Company header
	if logoPath := s.settingsSvc.LogoPath(ctx); logoPath != "" {
		pdf.ImageOptions(logoPath, 10, 10, 30, 0, false, gofpdf.ImageOptions{}, 0, "")
		pdf.SetXY(45, 12)
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 8, translator(settings.CompanyName))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	if settings.LegalID != "" {
		pdf.SetX(pdf.GetX())
		pdf.Cell(100, 5, translator("CNPJ: "+settings.LegalID))
		pdf.Ln(5)
	}
	if settings.Phone != "" || settings.Email != "" {
		pdf.Cell(100, 5, translator(settings.Phone+"  "+settings.Email))
		pdf.Ln(5)
	}
	if settings.Address != "" {
		pdf.Cell(100, 5, translator(settings.Address))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// Order identity
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(100, 8, translator(order.Reference()))
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(90, 8, translator("Data: "+order.Date.Format("02/01/2006")))
	pdf.Ln(10)

	// Client block
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(100, 6, translator("Cliente"))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(100, 5, translator(client.Name))
	pdf.Ln(5)
	if client.Phone != "" {
		pdf.Cell(100, 5, translator("Telefone: "+client.Phone))
		pdf.Ln(5)
	}
	if client.Document != "" {
		pdf.Cell(100, 5, translator("Documento: "+client.Document))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(90, 7, translator("Item"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, translator("Qtd"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, translator("Unitário"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, translator("Subtotal"), "1", 0, "R", true, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(90, 7, translator(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("R$ %.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("R$ %.2f", item.Subtotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(4)

	// Payment summary
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(100, 6, translator("Pagamento"))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, translator("Total:"))
	pdf.Cell(60, 6, fmt.Sprintf("R$ %.2f", order.Total))
	pdf.Ln(6)
	pdf.Cell(60, 6, translator("Pago:"))
	pdf.Cell(60, 6, fmt.Sprintf("R$ %.2f", order.Entry))
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 6, translator("Saldo:"))
	pdf.Cell(60, 6, fmt.Sprintf("R$ %.2f", order.Balance()))
	pdf.Ln(8)

	// Installment schedule
	if order.HasInstallmentPlan() {
		schedule := s.scheduleSvc.Schedule(
			*order.FirstInstallmentDate,
			order.InstallmentsCount,
			order.InstallmentIntervalDays,
			order.InstallmentValue,
			order.PaidInstallments,
		)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(100, 6, translator("Parcelas"))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		for _, inst := range schedule {
			status := translator("em aberto")
			if inst.Paid {
				status = translator("paga")
			}
			pdf.Cell(120, 6, translator(fmt.Sprintf("Parcela %d/%d - vencimento %s - R$ %.2f",
				inst.Index, order.InstallmentsCount, inst.DueDate.Format("02/01/2006"), inst.Value)))
			pdf.Cell(40, 6, status)
			pdf.Ln(6)
		}
	}

	if order.DeliveryDate != nil {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(120, 6, translator("Entrega prevista: "+order.DeliveryDate.Format("02/01/2006")))
	}

	if settings.PixKey != "" {
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(120, 5, translator("Chave Pix: "+settings.PixKey))
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// GenerateServiceOrderPDF renders the shop-floor service order from the
// HTML template, with item notes and production status
func (s *ReportService) GenerateServiceOrderPDF(ctx context.Context, orderID string) (*bytes.Buffer, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, order.ClientID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	type ItemData struct {
		Name      string
		Quantity  int
		UnitPrice string
		Subtotal  string
		Notes     string
	}

	items := make([]ItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemData{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: fmt.Sprintf("R$ %.2f", item.UnitPrice),
			Subtotal:  fmt.Sprintf("R$ %.2f", item.Subtotal()),
			Notes:     item.Notes,
		})
	}

	deliveryDate := "a combinar"
	if order.DeliveryDate != nil {
		deliveryDate = order.DeliveryDate.Format("02/01/2006")
	}

	data := map[string]interface{}{
		"CompanyName":  settings.CompanyName,
		"CompanyPhone": settings.Phone,
		"OrderNumber":  order.OrderNumber,
		"Status":       order.Status,
		"Date":         order.Date.Format("02/01/2006"),
		"DeliveryDate": deliveryDate,
		"ClientName":   client.Name,
		"ClientPhone":  client.Phone,
		"Items":        items,
		"Total":        fmt.Sprintf("R$ %.2f", order.Total),
		"Entry":        fmt.Sprintf("R$ %.2f", order.Entry),
		"Balance":      fmt.Sprintf("R$ %.2f", order.Balance()),
		"GeneratedAt":  time.Now().Format("02/01/2006 15:04"),
	}

	return s.generatePDF("service_order.html", data)
}

// GenerateOrdersCSV dumps the orders matching the query as CSV
func (s *ReportService) GenerateOrdersCSV(ctx context.Context, query *repository.OrderQuery) (*bytes.Buffer, error) {
	orders, _, err := s.orderRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Pedido", "Cliente", "Data", "Entrega", "Status", "Total", "Pago", "Saldo", "Arquivado"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, o := range orders {
		delivery := ""
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.Format("2006-01-02")
		}
		archived := "não"
		if o.Archived {
			archived = "sim"
		}
		record := []string{
			o.OrderNumber,
			o.ClientName,
			o.Date.Format("2006-01-02"),
			delivery,
			o.Status,
			fmt.Sprintf("%.2f", o.Total),
			fmt.Sprintf("%.2f", o.Entry),
			fmt.Sprintf("%.2f", o.Balance()),
			archived,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/graficaflow/grafica-api/internal/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService produces cash-flow exports in CSV, XLSX and PDF
type ExportService struct {
	financialRepo repository.FinancialRepository
}

func NewExportService(financialRepo repository.FinancialRepository) *ExportService {
	return &ExportService{financialRepo: financialRepo}
}

func (s *ExportService) fetch(ctx context.Context, start, end time.Time) ([]models.FinancialEntry, *repository.FinancialSummary, error) {
	query := &repository.FinancialQuery{
		ListQuery: repository.NewListQuery(),
		StartDate: &start,
		EndDate:   &end,
	}
	query.PerPage = 10000

	entries, _, err := s.financialRepo.List(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.financialRepo.Summary(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	return entries, summary, nil
}

func typeLabel(entryType string) string {
	if entryType == models.EntryTypeExpense {
		return "Despesa"
	}
	return "Receita"
}

func statusLabel(status string) string {
	if status == models.EntryStatusPaid {
		return "Pago"
	}
	return "Pendente"
}

// ExportCashFlowCSV exports the ledger movement of a period as CSV
func (s *ExportService) ExportCashFlowCSV(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	entries, summary, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Fluxo de Caixa", start.Format("2006-01-02") + " a " + end.Format("2006-01-02")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Data", "Descrição", "Categoria", "Tipo", "Status", "Método", "Valor"})

	for _, e := range entries {
		_ = writer.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category,
			typeLabel(e.Type),
			statusLabel(e.Status),
			e.Method,
			fmt.Sprintf("%.2f", e.SignedAmount()),
		})
	}

	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Resumo"})
	_ = writer.Write([]string{"Receitas Pagas", fmt.Sprintf("%.2f", summary.TotalIncome)})
	_ = writer.Write([]string{"Despesas Pagas", fmt.Sprintf("%.2f", summary.TotalExpense)})
	_ = writer.Write([]string{"Saldo", fmt.Sprintf("%.2f", summary.Balance)})
	_ = writer.Write([]string{"Receitas Pendentes", fmt.Sprintf("%.2f", summary.PendingIncome)})
	_ = writer.Write([]string{"Despesas Pendentes", fmt.Sprintf("%.2f", summary.PendingExpense)})

	writer.Flush()

	filename := fmt.Sprintf("fluxo_caixa_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportCashFlowXLSX exports the ledger movement of a period as a spreadsheet
func (s *ExportService) ExportCashFlowXLSX(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	entries, summary, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Fluxo de Caixa"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Fluxo de Caixa")
	_ = f.SetCellValue(sheet, "B1", fmt.Sprintf("%s a %s", start.Format("02/01/2006"), end.Format("02/01/2006")))
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	columns := []string{"Data", "Descrição", "Categoria", "Tipo", "Status", "Método", "Valor"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, col)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 4
	for _, e := range entries {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Date.Format("02/01/2006"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.Category)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), typeLabel(e.Type))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), statusLabel(e.Status))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.Method)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.SignedAmount())
		row++
	}

	row += 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Resumo")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Receitas Pagas")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalIncome)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Despesas Pagas")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.TotalExpense)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Saldo")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.Balance)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Receitas Pendentes")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.PendingIncome)
	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Despesas Pendentes")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), summary.PendingExpense)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("fluxo_caixa_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportCashFlowPDF exports the period summary as a compact PDF
func (s *ExportService) ExportCashFlowPDF(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	entries, summary, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, translator("Fluxo de Caixa"))
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(90, 10, fmt.Sprintf("%s a %s", start.Format("02/01/2006"), end.Format("02/01/2006")))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(22, 7, translator("Data"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(78, 7, translator("Descrição"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, translator("Tipo"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, translator("Status"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, translator("Valor"), "1", 0, "R", true, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		description := e.Description
		if len(description) > 45 {
			description = description[:45]
		}
		pdf.CellFormat(22, 6, e.Date.Format("02/01/2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(78, 6, translator(description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, translator(typeLabel(e.Type)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, translator(statusLabel(e.Status)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("R$ %.2f", e.SignedAmount()), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(100, 8, translator("Resumo"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, translator("Receitas Pagas:"))
	pdf.Cell(40, 6, fmt.Sprintf("R$ %.2f", summary.TotalIncome))
	pdf.Ln(6)
	pdf.Cell(60, 6, translator("Despesas Pagas:"))
	pdf.Cell(40, 6, fmt.Sprintf("R$ %.2f", summary.TotalExpense))
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 6, translator("Saldo:"))
	pdf.Cell(40, 6, fmt.Sprintf("R$ %.2f", summary.Balance))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("fluxo_caixa_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

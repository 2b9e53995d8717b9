package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/printshop-api/internal/domain/entity"
	"github.com/sangkips/printshop-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService renders quotes as production tickets
type ExportService struct {
	quoteService *QuoteService
}

// NewExportService creates a new export service
func NewExportService(quoteService *QuoteService) *ExportService {
	return &ExportService{quoteService: quoteService}
}

// ExportQuote returns the xlsx ticket of quote id and its file name.
func (s *ExportService) ExportQuote(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	quote, err := s.quoteService.GetQuote(ctx, id)
	if err != nil {
		return "", nil, err
	}
	data, err := QuoteTicket(quote)
	if err != nil {
		return "", nil, err
	}
	return "orcamento-" + quote.Reference + ".xlsx", data, nil
}

// QuoteTicket lays out quote as a one-sheet workbook: header, lines in
// position order, then fees and total.
func QuoteTicket(quote *entity.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orçamento"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]
	widths := []float64{5, 36, 12, 8, 10, 10, 16, 16, 40}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	rowStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Orçamento "+quote.Reference)
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	header := [][2]string{
		{"Cliente", sanitizeExcelCell(quote.CustomerName)},
		{"Data", quote.Date.Format("02/01/2006")},
		{"Status", string(quote.Status)},
		{"Prazo", fmt.Sprintf("%d dias", quote.DeadlineDays)},
	}
	for i, kv := range header {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, kv[0]+":")
		f.SetCellValue(sheet, "C"+row, kv[1])
	}

	headers := []string{"#", "Produto", "Modo", "Qtd", "Larg.", "Alt.", "Unitário", "Subtotal", "Detalhes"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"7", h)
	}
	f.SetCellStyle(sheet, "A7", lastCol+"7", headerStyle)

	row := 8
	for _, it := range quote.Items {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, it.Position+1)
		f.SetCellValue(sheet, "B"+r, sanitizeExcelCell(it.ProductName))
		f.SetCellValue(sheet, "C"+r, string(it.Mode))
		f.SetCellValue(sheet, "D"+r, it.Quantity)
		f.SetCellValue(sheet, "E"+r, utils.FormatDecimal(it.Width, 2))
		f.SetCellValue(sheet, "F"+r, utils.FormatDecimal(it.Height, 2))
		f.SetCellValue(sheet, "G"+r, utils.FormatBRL(it.UnitPrice))
		f.SetCellValue(sheet, "H"+r, utils.FormatBRL(it.Subtotal))
		f.SetCellValue(sheet, "I"+r, sanitizeExcelCell(labelSummary(it.LabelData)))
		f.SetCellStyle(sheet, "A"+r, lastCol+r, rowStyle)
		row++
	}

	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Itens:", quote.ItemsSubtotal()},
		{"Criação:", quote.DesignFee},
		{"Instalação:", quote.InstallFee},
		{"Total:", quote.TotalAmount},
		{"Entrada (50%):", quote.DownPayment},
	}
	for _, t := range totals {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "G"+r, t.label)
		f.SetCellStyle(sheet, "G"+r, "G"+r, labelStyle)
		f.SetCellValue(sheet, "H"+r, utils.FormatBRL(t.value))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// labelSummary is the one-line production note of a line.
func labelSummary(d entity.LabelData) string {
	if l, ok := d.Sticker(); ok {
		return fmt.Sprintf("%d etiquetas, %d colunas x %d fileiras, %s m lineares, %s m²",
			l.TotalLabels, l.ColsPerRow, l.RowsNeeded,
			utils.FormatDecimal(l.LinearMeters, 2), utils.FormatDecimal(l.AreaM2, 2))
	}
	if l, ok := d.Wrap(); ok {
		return fmt.Sprintf("%s: %s (%s, %s), %s m²",
			l.Vehicle, strings.Join(l.Parts, ", "), l.Complexity, l.MaterialLevel,
			utils.FormatDecimal(l.AreaM2, 2))
	}
	if l, ok := d.Laser(); ok {
		return fmt.Sprintf("%s %s, %s min", l.Mode, l.Material, utils.FormatDecimal(l.MachineTimeMinutes, 0))
	}
	return ""
}

// sanitizeExcelCell prefixes values Excel would read as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

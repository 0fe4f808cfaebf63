package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the style summary workbook.
type ExportService struct {
	styleRepo *repository.StyleRepository
}

func NewExportService(styleRepo *repository.StyleRepository) *ExportService {
	return &ExportService{styleRepo: styleRepo}
}

// ExportStyle exports one style's summary report as xlsx.
func (s *ExportService) ExportStyle(ctx context.Context, styleID string) (*excelize.File, string, error) {
	style, err := s.styleRepo.FindByID(ctx, styleID)
	if err != nil {
		return nil, "", err
	}

	f, err := BuildStyleWorkbook(style, IndexByProcess(style.Comments))
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}

	filename := fmt.Sprintf("Style_%s_Summary.xlsx", style.StyleNo)
	return f, filename, nil
}

const summarySheet = "Summary"

// BuildStyleWorkbook lays out the fixed summary report: a title row, three
// info blocks and the twelve process sections. The layout depends only on the
// style and its indexed comments, so exporting the same style twice yields an
// identical sheet.
func BuildStyleWorkbook(style *entity.Style, comments ProcessComments) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", summarySheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dateStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: thinBorders(),
	})
	valueStyle, _ := f.NewStyle(&excelize.Style{
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	sectionStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})

	// Title row.
	f.MergeCell(summarySheet, "A1", "D1")
	f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Style Summary - %s", style.StyleNo))
	f.SetCellStyle(summarySheet, "A1", "D1", titleStyle)
	f.MergeCell(summarySheet, "E1", "F1")
	f.SetCellValue(summarySheet, "E1", style.CreatedAt.Format("02 Jan 2006"))
	f.SetCellStyle(summarySheet, "E1", "F1", dateStyle)

	// Info blocks, rows 3-7. Column pairs A/B, C/D, E/F.
	infoBlocks := [][]struct {
		label string
		value string
	}{
		{
			{"Customer", customerName(style)},
			{"Season", style.Season},
			{"Style No", style.StyleNo},
			{"Description", joinDescriptions(style.Descriptions)},
			{"Program", style.Program},
		},
		{
			{"Production Line", style.ProductionLine},
			{"Order Qty", fmt.Sprintf("%d", style.OrderQty)},
			{"APM", style.APM},
		},
		{
			{"Technician", style.Technician},
			{"QC", style.QC},
			{"QA", style.QA},
			{"TQS", style.TQS},
		},
	}
	blockCols := []struct{ label, value string }{{"A", "B"}, {"C", "D"}, {"E", "F"}}
	for b, block := range infoBlocks {
		for i, field := range block {
			row := 3 + i
			labelCell := fmt.Sprintf("%s%d", blockCols[b].label, row)
			valueCell := fmt.Sprintf("%s%d", blockCols[b].value, row)
			f.SetCellValue(summarySheet, labelCell, field.label)
			f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle)
			f.SetCellValue(summarySheet, valueCell, field.value)
			f.SetCellStyle(summarySheet, valueCell, valueCell, valueStyle)
		}
	}

	// Section table header, row 9.
	f.SetCellValue(summarySheet, "A9", "Description")
	f.SetCellValue(summarySheet, "B9", "Responsible Person")
	f.SetCellValue(summarySheet, "C9", "Process")
	f.MergeCell(summarySheet, "D9", "F9")
	f.SetCellValue(summarySheet, "D9", "Comments")
	f.SetCellStyle(summarySheet, "A9", "F9", headerStyle)

	// Process sections, one row per process, from row 10.
	row := 10
	for _, section := range reportSections {
		first := row
		last := row + len(section.Processes) - 1

		f.MergeCell(summarySheet, fmt.Sprintf("A%d", first), fmt.Sprintf("A%d", last))
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", first), section.Name)
		f.MergeCell(summarySheet, fmt.Sprintf("B%d", first), fmt.Sprintf("B%d", last))
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", first), section.Responsible)
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", first), fmt.Sprintf("B%d", last), sectionStyle)

		for _, process := range section.Processes {
			f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), process)
			f.MergeCell(summarySheet, fmt.Sprintf("D%d", row), fmt.Sprintf("F%d", row))
			f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), GetComment(comments, section.commentKey(process)))
			f.SetCellStyle(summarySheet, fmt.Sprintf("C%d", row), fmt.Sprintf("F%d", row), cellStyle)
			if section.RowHeight > 0 {
				f.SetRowHeight(summarySheet, row, section.RowHeight)
			}
			row++
		}
	}

	colWidths := []float64{22, 16, 20, 16, 16, 16}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(summarySheet, col, col, w)
	}

	return f, nil
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func joinDescriptions(descs []entity.Description) string {
	texts := make([]string, 0, len(descs))
	for _, d := range descs {
		if d.Text != "" {
			texts = append(texts, d.Text)
		}
	}
	return strings.Join(texts, "\n")
}

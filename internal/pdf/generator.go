package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/cromos/ballpark/internal/model"
)

type Generator struct {
	fontName string
}

// NewGenerator uses the Helvetica core font; every label in the summary is ASCII.
func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a one-page summary: project parameters, rounded totals per
// breakdown and the ballpark roll-up.
func (g *Generator) Generate(report model.EstimateReport) ([]byte, error) {
	if report.Estimate == nil {
		return nil, fmt.Errorf("pdf: report has no estimate")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Ballpark estimate", false)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Clinical trial ballpark estimate", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Estimate %s, generated %s, rate card %s",
		report.ID, formatDate(report.GeneratedAt), safeValue(report.RateCardVersion)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addProjectBlock(pdf, g.fontName, report.Project)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Totals by breakdown, %s (rounded to the nearest thousand)", safeValue(report.Currency)), "", 1, "L", false, 0, "")

	headers := []string{"Breakdown", "Startup service", "Startup pass-through", "Active service", "Active pass-through", "Total"}
	colWidths := []float64{55, 44, 44, 44, 44, 36}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, b := range report.Estimate.Breakdowns() {
		drawTableRow(pdf, g.fontName, []string{
			b.Country.String(),
			formatAmount(b.RoundedStartupService()),
			formatAmount(b.RoundedStartupPassthrough()),
			formatAmount(b.RoundedActiveService()),
			formatAmount(b.RoundedActivePassthrough()),
			formatAmount(b.RoundedGrandTotal()),
		}, colWidths, false)
	}

	totals := report.Estimate.Totals
	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Startup phase: %s", formatAmount(totals.Startup)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Active phase: %s", formatAmount(totals.Active)), "", 1, "R", false, 0, "")
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Grand total: %s %s", formatAmount(totals.GrandTotal), report.Currency), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 9)
	pdf.MultiCell(0, 5, "Ballpark figures. Totals are rounded per phase and cost type before they are summed; "+
		"the itemized workbook export carries the exact line items.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addProjectBlock(pdf *gofpdf.Fpdf, fontName string, p model.ProjectSummary) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Project", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Enrollment %d, treatment %d, follow-up %d months; active phase %d months",
			p.EnrollmentMonths, p.TreatmentMonths, p.FollowupMonths, p.ActivePhaseMonths),
		fmt.Sprintf("Qualification visits: %s, initiation visits: %s, close-out visits: %s",
			safeValue(string(p.QualificationVisitType)), safeValue(string(p.InitiationVisitType)), safeValue(string(p.CloseoutVisitType))),
		fmt.Sprintf("Sites: %d, patients: %d, vendors: %d", p.TotalSites, p.TotalPatients, p.Vendors),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// formatAmount prints whole currency units with thousands separators.
func formatAmount(value float64) string {
	digits := strconv.FormatFloat(value, 'f', 0, 64)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}

package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cromos/ballpark/internal/model"
)

const summarySheet = "Summary"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a workbook with a summary sheet of rounded totals and one
// sheet of exact line items per breakdown.
func (g *Generator) Generate(report model.EstimateReport) ([]byte, error) {
	if report.Estimate == nil {
		return nil, fmt.Errorf("excel: report has no estimate")
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, breakdown := range report.Estimate.Breakdowns() {
		sheetName := buildSheetName(breakdown.Country, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, report, breakdown); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.EstimateReport) error {
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	p := report.Project
	set("A1", "Ballpark estimate")
	set("B1", report.ID.String())
	set("A2", "Generated")
	set("B2", formatDateTime(report.GeneratedAt))
	set("A3", "Rate card")
	set("B3", report.RateCardVersion)
	set("A4", "Currency")
	set("B4", report.Currency)
	set("A5", "Enrollment / treatment / follow-up, months")
	set("B5", fmt.Sprintf("%d / %d / %d", p.EnrollmentMonths, p.TreatmentMonths, p.FollowupMonths))
	set("A6", "Active phase, months")
	set("B6", p.ActivePhaseMonths)
	set("A7", "Visits: qualification / initiation / close-out")
	set("B7", fmt.Sprintf("%s / %s / %s", p.QualificationVisitType, p.InitiationVisitType, p.CloseoutVisitType))
	set("A8", "Sites")
	set("B8", p.TotalSites)
	set("A9", "Patients")
	set("B9", p.TotalPatients)
	set("A10", "Vendors")
	set("B10", p.Vendors)

	tableRow := 12
	headers := []string{
		"Breakdown",
		"Startup service",
		"Startup pass-through",
		"Active service",
		"Active pass-through",
		"Total",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	row := tableRow
	for _, b := range report.Estimate.Breakdowns() {
		row++
		set(fmt.Sprintf("A%d", row), b.Country.String())
		set(fmt.Sprintf("B%d", row), b.RoundedStartupService())
		set(fmt.Sprintf("C%d", row), b.RoundedStartupPassthrough())
		set(fmt.Sprintf("D%d", row), b.RoundedActiveService())
		set(fmt.Sprintf("E%d", row), b.RoundedActivePassthrough())
		set(fmt.Sprintf("F%d", row), b.RoundedGrandTotal())
	}

	totals := report.Estimate.Totals
	row += 2
	set(fmt.Sprintf("A%d", row), "Startup total")
	set(fmt.Sprintf("F%d", row), totals.Startup)
	set(fmt.Sprintf("A%d", row+1), "Active total")
	set(fmt.Sprintf("F%d", row+1), totals.Active)
	set(fmt.Sprintf("A%d", row+2), "Grand total")
	set(fmt.Sprintf("F%d", row+2), totals.GrandTotal)

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "F", 20)
	return firstErr
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.EstimateReport, b *model.CostBreakdown) error {
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	set("A1", "Breakdown")
	set("B1", b.Country.String())
	set("A2", "Currency")
	set("B2", report.Currency)

	tableRow := 4
	for i, header := range []string{"Phase", "Type", "Item", "Amount"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	sections := []struct {
		phase string
		kind  string
		items *model.LineItems
		total float64
	}{
		{"Startup", "Service", b.StartupService(), b.RoundedStartupService()},
		{"Startup", "Pass-through", b.StartupPassthrough(), b.RoundedStartupPassthrough()},
		{"Active", "Service", b.ActiveService(), b.RoundedActiveService()},
		{"Active", "Pass-through", b.ActivePassthrough(), b.RoundedActivePassthrough()},
	}

	row := tableRow
	for _, section := range sections {
		for _, name := range section.items.Names() {
			amount, _ := section.items.Get(name)
			row++
			set(fmt.Sprintf("A%d", row), section.phase)
			set(fmt.Sprintf("B%d", row), section.kind)
			set(fmt.Sprintf("C%d", row), humanize(name))
			set(fmt.Sprintf("D%d", row), amount)
		}
		row++
		set(fmt.Sprintf("A%d", row), section.phase)
		set(fmt.Sprintf("B%d", row), section.kind)
		set(fmt.Sprintf("C%d", row), "Subtotal (rounded)")
		set(fmt.Sprintf("D%d", row), section.total)
	}

	row += 2
	set(fmt.Sprintf("C%d", row), "Total (rounded)")
	set(fmt.Sprintf("D%d", row), b.RoundedGrandTotal())

	_ = file.SetColWidth(sheet, "A", "B", 14)
	_ = file.SetColWidth(sheet, "C", "C", 40)
	_ = file.SetColWidth(sheet, "D", "D", 16)
	return firstErr
}

func buildSheetName(region model.Region, used map[string]struct{}) string {
	base := sanitizeSheetName(region.String())
	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

// humanize turns a line item key into a label: "cdas_signed" -> "Cdas signed".
func humanize(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

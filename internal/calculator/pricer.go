package calculator

import (
	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

// pricer wraps the rate table lookups of one region and keeps the first
// lookup failure, so the formula code reads as arithmetic. Callers check err
// once after the last line item.
type pricer struct {
	table  *rates.Table
	region model.Region
	err    error
}

func newPricer(table *rates.Table, region model.Region) *pricer {
	return &pricer{table: table, region: region}
}

func (p *pricer) keep(v float64, err error) float64 {
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return 0
	}
	return v
}

func (p *pricer) keepInt(v int, err error) float64 {
	return p.keep(float64(v), err)
}

func (p *pricer) rate(role rates.Role) float64 {
	return p.keep(p.table.HourlyRate(role, p.region))
}

func (p *pricer) global(key string) float64 {
	return p.keep(p.table.Global(key))
}

func (p *pricer) visit(kind rates.VisitKind) float64 {
	return p.keep(p.table.VisitCost(kind, p.region))
}

func (p *pricer) regulatory(key string) float64 {
	return p.keepInt(p.table.ScalarRegulatoryHours(key))
}

func (p *pricer) fixed(costType string) float64 {
	return p.table.FixedCost(costType, p.region)
}

func (p *pricer) monthly(costType string) float64 {
	return p.table.MonthlyCost(costType, p.region)
}

func (p *pricer) siteManagementMonthly() float64 {
	return p.keep(p.table.SiteManagementMonthlyCost(p.region))
}

func (p *pricer) contractTemplate() float64 {
	return p.keep(p.table.ContractTemplateCost(p.region))
}

func (p *pricer) contractNegotiation() float64 {
	return p.keep(p.table.ContractNegotiationCost(p.region))
}

func (p *pricer) majorRASubmission() float64 {
	return p.keep(p.table.MajorRASubmissionCost(p.region))
}

// in returns a pricer for another region sharing the same sticky error.
func (p *pricer) in(region model.Region) *regionPricer {
	return &regionPricer{parent: p, region: region}
}

type regionPricer struct {
	parent *pricer
	region model.Region
}

func (r *regionPricer) rate(role rates.Role) float64 {
	return r.parent.keep(r.parent.table.HourlyRate(role, r.region))
}

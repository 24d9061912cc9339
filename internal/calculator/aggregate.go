package calculator

import "github.com/cromos/ballpark/internal/model"

// Aggregate rolls the breakdowns up into ballpark totals. Each breakdown's
// phase and cost-type totals are rounded to the nearest thousand before they
// are summed; line items stay exact.
func Aggregate(regions []*model.CostBreakdown, global *model.CostBreakdown) model.Totals {
	var totals model.Totals
	add := func(b *model.CostBreakdown) {
		if b == nil {
			return
		}
		totals.Startup += b.RoundedStartupService() + b.RoundedStartupPassthrough()
		totals.Active += b.RoundedActiveService() + b.RoundedActivePassthrough()
	}

	add(global)
	for _, b := range regions {
		add(b)
	}
	totals.GrandTotal = totals.Startup + totals.Active
	return totals
}

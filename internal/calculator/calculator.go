// Package calculator turns a project description into an itemized ballpark
// estimate: derived inputs per region, startup and active phase costs per
// region, project-wide costs and the rounded roll-up.
package calculator

import (
	"errors"
	"fmt"

	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

// ErrInvalidProject is returned for a project the formulas cannot price.
var ErrInvalidProject = errors.New("invalid project")

// Calculator holds no state besides the read-only rate table and is safe for
// concurrent use.
type Calculator struct {
	table *rates.Table
}

func New(table *rates.Table) *Calculator {
	return &Calculator{table: table}
}

func (c *Calculator) Table() *rates.Table {
	return c.table
}

// Calculate prices every active region, the project-wide work and the totals.
// A missing required rate fails the whole calculation.
func (c *Calculator) Calculate(project *model.ProjectInput) (*model.Estimate, error) {
	if project == nil {
		return nil, fmt.Errorf("%w: nil project", ErrInvalidProject)
	}
	if project.ActivePhaseDuration() < 0 {
		return nil, fmt.Errorf("%w: negative active phase duration %d", ErrInvalidProject, project.ActivePhaseDuration())
	}

	active := project.ActiveCountries()
	estimate := &model.Estimate{Countries: make([]*model.CostBreakdown, 0, len(active))}
	derived := make([]model.DerivedInputs, 0, len(active))

	for _, country := range active {
		d, err := DeriveInputs(project, country, c.table)
		if err != nil {
			return nil, err
		}
		derived = append(derived, d)

		costs := model.NewCostBreakdown(country.Country)
		if err := Startup(d, c.table, costs); err != nil {
			return nil, err
		}
		if err := Active(project, d, c.table, costs); err != nil {
			return nil, err
		}
		estimate.Countries = append(estimate.Countries, costs)
	}

	global, err := Global(project, derived, c.table)
	if err != nil {
		return nil, err
	}
	estimate.Global = global
	estimate.Totals = Aggregate(estimate.Countries, estimate.Global)
	return estimate, nil
}

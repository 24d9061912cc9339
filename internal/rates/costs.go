package rates

import "github.com/cromos/ballpark/internal/model"

// VisitCost prices one visit of the given kind: visit hours at the CRA rate.
func (t *Table) VisitCost(kind VisitKind, region model.Region) (float64, error) {
	hours, err := t.VisitHours(kind, region)
	if err != nil {
		return 0, err
	}
	rate, err := t.HourlyRate(RoleCRA, region)
	if err != nil {
		return 0, err
	}
	return float64(hours) * rate, nil
}

// SiteManagementMonthlyCost is the monthly load of one active site:
// 5 CRA hours and 6 admin hours.
func (t *Table) SiteManagementMonthlyCost(region model.Region) (float64, error) {
	cra, err := t.HourlyRate(RoleCRA, region)
	if err != nil {
		return 0, err
	}
	admin, err := t.HourlyRate(RoleAdmin, region)
	if err != nil {
		return 0, err
	}
	return 5*cra + 6*admin, nil
}

func (t *Table) ContractTemplateCost(region model.Region) (float64, error) {
	return t.contractCost("contract_template_hours", region)
}

func (t *Table) ContractNegotiationCost(region model.Region) (float64, error) {
	return t.contractCost("contract_negotiation_hours", region)
}

func (t *Table) contractCost(hoursKey string, region model.Region) (float64, error) {
	rate, err := t.HourlyRate(RoleContract, region)
	if err != nil {
		return 0, err
	}
	hours, err := t.Global(hoursKey)
	if err != nil {
		return 0, err
	}
	return rate * hours, nil
}

// MajorRASubmissionCost prices a major regulatory authority submission: RA
// preparation, CRA support and RA follow-up, each at its own role rate.
func (t *Table) MajorRASubmissionCost(region model.Region) (float64, error) {
	raHours, err := t.RegulatoryPart("major_ra_submission", "ra_hours")
	if err != nil {
		return 0, err
	}
	craHours, err := t.RegulatoryPart("major_ra_submission", "cra_hours")
	if err != nil {
		return 0, err
	}
	followupHours, err := t.RegulatoryPart("major_ra_submission", "ra_followup_hours")
	if err != nil {
		return 0, err
	}
	raRate, err := t.HourlyRate(RoleRA, region)
	if err != nil {
		return 0, err
	}
	craRate, err := t.HourlyRate(RoleCRA, region)
	if err != nil {
		return 0, err
	}
	return float64(raHours)*raRate + float64(craHours)*craRate + float64(followupHours)*raRate, nil
}

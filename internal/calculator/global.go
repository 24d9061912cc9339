package calculator

import (
	"fmt"

	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

// Project-wide work is staffed from the US office and priced at its rate card.
const globalRateRegion = model.RegionUS

// EU CTIS submissions are handled by the CEE regulatory team.
const ctisRateRegion = model.RegionEUCEE

type plan struct {
	item          string
	hoursKey      string
	unblindedOnly bool
}

// Plans authored once at startup and reviewed every year of the active phase.
// The project management plan also grows with the vendor count.
var projectPlans = []plan{
	{item: "tmf_management_plan", hoursKey: "tmf_plan_hours"},
	{item: "monitoring_plan", hoursKey: "monitoring_plan_hours"},
	{item: "unblinded_monitoring_plan", hoursKey: "unblinded_monitoring_plan_hours", unblindedOnly: true},
	{item: "risk_management_plan", hoursKey: "risk_plan_hours"},
	{item: "deviation_handling_plan", hoursKey: "deviation_plan_hours"},
	{item: "quality_management_plan", hoursKey: "quality_plan_hours"},
}

// Global prices the work that is not attributed to any region. The project
// runs as long as its slowest region, so phase durations are the maxima
// across the derived inputs.
func Global(project *model.ProjectInput, derived []model.DerivedInputs, table *rates.Table) (*model.CostBreakdown, error) {
	costs := model.NewCostBreakdown(model.GlobalRegion)
	if project.TotalSites() == 0 {
		return costs, nil
	}

	var startupMonths float64
	var activeMonths int
	for _, d := range derived {
		startupMonths = max(startupMonths, d.StartupMonths)
		activeMonths = max(activeMonths, d.ActivePhaseMonths)
	}

	p := newPricer(table, globalRateRegion)
	pm := p.rate(rates.RolePM)
	qa := p.rate(rates.RoleQA)
	pmCount := pmHeadcount(project)
	extraPMs := float64(pmCount - 1)
	vendors := float64(project.Vendors)
	unblinded := project.HasUnblindedVisits()
	hasEU := project.HasEUCountries()

	clientCalls := func(months float64) float64 {
		weeks := float64(roundCount(months * daysPerMonth / daysPerWeek))
		return p.global("client_call_weekly_hours")*(pm+qa)*weeks +
			p.global("extra_pm_weekly_hours")*pm*extraPMs*weeks
	}
	pmPlanHours := p.global("pm_plan_base_hours") + p.global("pm_plan_hours_per_vendor")*vendors
	trainingHours := p.global("team_training_global_hours")
	monthlyPM := p.global("vendor_management_monthly_hours") * pm * vendors
	extraMeetingHours := p.global("extra_pm_meeting_hours")

	// startup
	costs.AddStartupService("questionnaire_development", p.global("questionnaire_development"))
	if hasEU {
		costs.AddStartupService("eu_part1_dossier", p.global("eu_part1_dossier"))
		costs.AddStartupService("eu_legal_rep_setup", p.global("eu_legal_rep_setup"))
	}
	costs.AddStartupService("external_kickoff", p.global("external_kickoff")+extraMeetingHours*pm*extraPMs)
	costs.AddStartupService("investigator_meeting_global", p.global("investigator_meeting_global")+extraMeetingHours*pm*extraPMs)
	costs.AddStartupService("client_calls", clientCalls(startupMonths))

	costs.AddStartupService("project_management_plan", pmPlanHours*pm)
	for _, pl := range projectPlans {
		if pl.unblindedOnly && !unblinded {
			continue
		}
		costs.AddStartupService(pl.item, p.global(pl.hoursKey)*pm)
	}

	costs.AddStartupService("vendors_setup", p.global("vendors_setup_units")*p.global("vendors_setup"))
	costs.AddStartupService("team_setup", p.global("team_setup"))
	costs.AddStartupService("team_training", trainingHours*pm*float64(pmCount))

	costs.AddStartupService("tmf_maintenance", p.global("tmf_maintenance_global")*startupMonths)
	costs.AddStartupService("vendor_management", monthlyPM*startupMonths)
	costs.AddStartupService("tracking_reporting", p.global("tracking_reporting")*startupMonths)
	costs.AddStartupService("budget_invoicing", p.global("budget_invoicing")*startupMonths)

	costs.AddStartupService("protocol_checklist", p.global("protocol_checklist"))
	costs.AddStartupService("tmf_audit_initial", p.global("tmf_audit_initial"))
	if unblinded {
		costs.AddStartupService("tmf_audit_unblinded_initial", p.global("tmf_audit_unblinded_initial"))
	}

	// active
	months := float64(activeMonths)
	cycles := float64(roundCount(months / monthsPerYear))
	updateShare := p.global("plan_update_share")

	if hasEU {
		ctisRA := p.in(ctisRateRegion).rate(rates.RoleRA)
		costs.AddActiveService("eu_ctis_major", p.regulatory("eu_ctis_major")*ctisRA)
		costs.AddActiveService("eu_ctis_minor", p.regulatory("minor_ra_submission")*ctisRA*cycles)
		costs.AddActiveService("eu_legal_rep_annual", p.global("eu_legal_rep_annual")*cycles)
	}
	costs.AddActiveService("client_calls", clientCalls(months))

	costs.AddActiveService("project_management_plan_update", updateShare*pmPlanHours*pm*cycles)
	for _, pl := range projectPlans {
		if pl.unblindedOnly && !unblinded {
			continue
		}
		costs.AddActiveService(pl.item+"_update", updateShare*p.global(pl.hoursKey)*pm*cycles)
	}

	costs.AddActiveService("team_retraining", p.global("retraining_share")*trainingHours*pm*float64(pmCount)*cycles)

	costs.AddActiveService("tmf_maintenance", p.global("tmf_maintenance_global")*months)
	costs.AddActiveService("vendor_management", monthlyPM*months)
	costs.AddActiveService("tracking_reporting", p.global("tracking_reporting")*months)
	costs.AddActiveService("budget_invoicing", p.global("budget_invoicing")*months)

	costs.AddActiveService("tmf_audit_annual", p.global("tmf_audit_annual")*cycles)
	if unblinded {
		costs.AddActiveService("tmf_audit_unblinded_annual", p.global("tmf_audit_unblinded_annual")*cycles)
	}

	if p.err != nil {
		return nil, fmt.Errorf("global costs: %w", p.err)
	}
	return costs, nil
}

// pmHeadcount adds a second project manager when unblinding is in scope.
func pmHeadcount(project *model.ProjectInput) int {
	if project.HasUnblindedVisits() {
		return 2
	}
	return 1
}

package calculator

import (
	"fmt"

	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

const (
	hoursSAEAssistance     = 4
	hoursSitePaymentAdmin  = 5
	minorRACyclesEUCEE     = 5
	minorECBaseNonEU       = 3
	minorECBaseUS          = 5
	minorRABaseSubmissions = 1
)

// Active appends the active-phase line items of one region to costs. It is a
// no-op when the project has no active phase.
func Active(project *model.ProjectInput, d model.DerivedInputs, table *rates.Table, costs *model.CostBreakdown) error {
	if d.ActivePhaseMonths == 0 {
		return nil
	}

	p := newPricer(table, d.Country)

	activeRegulatory(p, d, costs)
	activeClinicalOps(p, d, costs)
	activeMonitoring(p, d, costs)
	activeSafety(p, d, costs)
	activePassthrough(p, project, d, costs)

	if p.err != nil {
		return fmt.Errorf("active costs %s: %w", d.Country, p.err)
	}
	return nil
}

func activeRegulatory(p *pricer, d model.DerivedInputs, costs *model.CostBreakdown) {
	ra := p.rate(rates.RoleRA)
	cycles := float64(d.AnnualSubmissionCycles)
	sites := float64(d.Sites)

	// The US files with the central IRB only.
	if d.Country.FacesRegulatoryAuthority() {
		costs.AddActiveService("major_ra_submissions", p.majorRASubmission())

		minorRA := p.regulatory("minor_ra_submission") * ra
		if d.Country == model.RegionEUCEE {
			costs.AddActiveService("minor_ra_submissions", minorRA*minorRACyclesEUCEE)
		} else {
			costs.AddActiveService("minor_ra_submissions", minorRA*(minorRABaseSubmissions+cycles))
		}
	}

	// EU ethics submissions run through CTIS and are priced globally.
	majorEC := p.regulatory("major_ec_submission") * ra
	minorEC := p.regulatory("minor_ec_submission") * ra
	switch {
	case d.Country.IsNonEU():
		costs.AddActiveService("major_ec_submissions", majorEC*cycles*sites)
		costs.AddActiveService("minor_ec_submissions", minorEC*(minorECBaseNonEU+cycles*sites))
	case d.Country.IsUS():
		costs.AddActiveService("major_ec_submissions", majorEC*cycles)
		costs.AddActiveService("minor_ec_submissions", minorEC*(minorECBaseUS+cycles))
	}
}

func activeClinicalOps(p *pricer, d model.DerivedInputs, costs *model.CostBreakdown) {
	cra := p.rate(rates.RoleCRA)
	pm := p.rate(rates.RolePM)
	admin := p.rate(rates.RoleAdmin)
	months := float64(d.ActivePhaseMonths)
	jurisdictions := float64(d.Jurisdictions)
	cycles := float64(d.AnnualSubmissionCycles)

	initialTraining := hoursTeamTraining * cra * float64(d.CRAsRequired)
	costs.AddActiveService("team_retraining", p.global("retraining_share")*initialTraining*cycles)

	costs.AddActiveService("tmf_maintenance", p.monthly("tmf_maintenance")*months)
	costs.AddActiveService("ctms_update", p.monthly("ctms_update")*months)
	costs.AddActiveService("internal_communication", hoursInternalComms*cra*months)
	costs.AddActiveService("team_management", hoursTeamManagement*pm*jurisdictions*months)
	costs.AddActiveService("visit_report_review", pm*float64(d.TotalActiveVisits()))
	costs.AddActiveService("country_issues_resolution", hoursCountryIssues*pm*jurisdictions*months)
	costs.AddActiveService("passthrough_management", hoursPassthroughAdmin*admin*months)
}

func activeMonitoring(p *pricer, d model.DerivedInputs, costs *model.CostBreakdown) {
	costs.AddActiveService("site_management", p.siteManagementMonthly()*float64(d.SiteMonthsActive))

	addVisits(costs.AddActiveService, p, "monitoring_visits_onsite", rates.VisitMonitoringOnsite, d.MonitoringVisitsOnsite)
	addVisits(costs.AddActiveService, p, "monitoring_visits_remote", rates.VisitMonitoringRemote, d.MonitoringVisitsRemote)
	addVisits(costs.AddActiveService, p, "unblinded_visits", rates.VisitUnblinded, d.UnblindedVisits)
	addVisits(costs.AddActiveService, p, "closeout_visits_onsite", rates.VisitCloseoutOnsite, d.CloseoutVisitsOnsite)
	addVisits(costs.AddActiveService, p, "closeout_visits_remote", rates.VisitCloseoutRemote, d.CloseoutVisitsRemote)

	costs.AddActiveService("site_payment_admin", hoursSitePaymentAdmin*p.rate(rates.RoleCRA)*float64(d.SitePayments))
}

// activeSafety prices SAE support and SUSAR reporting. Periodic RA
// notifications are emitted once for every RA-facing region, EU included.
func activeSafety(p *pricer, d model.DerivedInputs, costs *model.CostBreakdown) {
	cra := p.rate(rates.RoleCRA)
	ra := p.rate(rates.RoleRA)
	expedited := float64(d.ExpeditedSafetySubmissions)
	periodic := float64(d.PeriodicSafetyNotifications)
	sites := float64(d.Sites)

	costs.AddActiveService("sae_assistance", hoursSAEAssistance*cra*float64(d.SAEs))

	if d.Country.IsNonEU() {
		costs.AddActiveService("expedited_safety_ra", p.regulatory("expedited_safety_ra")*ra*expedited)
	}
	if d.Country.FacesRegulatoryAuthority() {
		costs.AddActiveService("periodic_safety_ra", p.regulatory("periodic_safety_ra")*ra*periodic)
	}

	switch {
	case d.Country.IsNonEU():
		costs.AddActiveService("expedited_safety_ec", cra*expedited*sites)
		costs.AddActiveService("periodic_safety_ec", cra*periodic*sites)
	case d.Country.IsUS():
		costs.AddActiveService("expedited_safety_ec", cra*expedited)
		costs.AddActiveService("periodic_safety_ec", cra*periodic)
	}
}

func activePassthrough(p *pricer, project *model.ProjectInput, d model.DerivedInputs, costs *model.CostBreakdown) {
	cycles := float64(d.AnnualSubmissionCycles)
	sites := float64(d.Sites)

	if d.MonitoringVisitsOnsite > 0 {
		costs.AddActivePassthrough("travel_monitoring", p.fixed("travel_omv")*float64(d.MonitoringVisitsOnsite))
	}
	if d.UnblindedVisits > 0 {
		costs.AddActivePassthrough("travel_unblinded", p.fixed("travel_cov")*float64(d.UnblindedVisits))
	}
	if d.CloseoutVisitsOnsite > 0 {
		costs.AddActivePassthrough("travel_closeout", p.fixed("travel_cov")*float64(d.CloseoutVisitsOnsite))
	}

	costs.AddActivePassthrough("various_ongoing", p.fixed("various_ongoing")*float64(d.SiteMonthsActive))

	onsiteVisits := d.MonitoringVisitsOnsite + d.UnblindedVisits + d.CloseoutVisitsOnsite
	costs.AddActivePassthrough("monitor_visit_fee", p.fixed("monitor_visit_fee")*float64(onsiteVisits))

	if d.Country.IsUS() {
		costs.AddActivePassthrough("site_regulatory_annual", p.fixed("site_regulatory_annual")*cycles*sites)
		costs.AddActivePassthrough("pharmacy_annual", p.fixed("pharmacy_annual")*cycles*sites)
		costs.AddActivePassthrough("site_closeout_fee", p.fixed("site_closeout_fee")*sites)
		costs.AddActivePassthrough("pharmacy_closeout_fee", p.fixed("pharmacy_closeout_fee")*sites)
		costs.AddActivePassthrough("central_irb", p.global("central_irb_fee")*float64(d.ActivePhaseMonths)*sites)
	}

	if project.InvestigatorGrantPerPatient != nil && *project.InvestigatorGrantPerPatient > 0 {
		costs.AddActivePassthrough("investigator_grants", *project.InvestigatorGrantPerPatient*float64(d.Patients))
	}
}

package calculator

import (
	"fmt"

	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

// Hours per unit of startup work, priced at the region's role rates.
const (
	hoursSiteContact         = 0.5
	hoursCDA                 = 1.5
	hoursQuestionnaire       = 2
	hoursSiteRegulatoryDocs  = 8
	hoursInvestigatorMeeting = 4
	hoursTeamSetup           = 2
	hoursTeamTraining        = 22
	hoursInternalComms       = 2
	hoursTeamManagement      = 2
	hoursCountryIssues       = 4
	hoursSiteSetup           = 14
	hoursPassthroughAdmin    = 4
)

// Startup appends the startup-phase line items of one region to costs. It is a
// no-op for a region without startup months.
func Startup(d model.DerivedInputs, table *rates.Table, costs *model.CostBreakdown) error {
	if d.StartupMonths == 0 {
		return nil
	}

	p := newPricer(table, d.Country)
	months := d.StartupMonths
	jurisdictions := float64(d.Jurisdictions)
	sites := float64(d.Sites)

	cra := p.rate(rates.RoleCRA)
	pm := p.rate(rates.RolePM)
	admin := p.rate(rates.RoleAdmin)
	ra := p.rate(rates.RoleRA)

	// site selection
	costs.AddStartupService("sites_contacted", hoursSiteContact*cra*float64(d.SitesContacted))
	costs.AddStartupService("cdas_signed", hoursCDA*cra*float64(d.SitesCDAs))
	costs.AddStartupService("questionnaires_collected", hoursQuestionnaire*cra*float64(d.SitesQuestionnaires))
	costs.AddStartupService("site_regulatory_docs", hoursSiteRegulatoryDocs*cra*sites)

	addVisits(costs.AddStartupService, p, "qualification_visits_onsite", rates.VisitQualificationOnsite, d.QualificationVisitsOnsite)
	addVisits(costs.AddStartupService, p, "qualification_visits_remote", rates.VisitQualificationRemote, d.QualificationVisitsRemote)

	if d.Sites > 0 {
		costs.AddStartupService("contract_templates", p.contractTemplate()*jurisdictions)
		costs.AddStartupService("contract_negotiation", p.contractNegotiation()*sites)
	}

	costs.AddStartupService("initial_ec_submissions", p.regulatory("initial_ec_submission")*ra*sites)
	if !d.Country.IsUS() {
		costs.AddStartupService("country_dossier", p.regulatory("country_dossier")*ra*jurisdictions)
	}

	cras := float64(d.CRAsRequired)
	costs.AddStartupService("investigator_meeting", hoursInvestigatorMeeting*p.rate(rates.RoleInvestigatorMeeting)*cras)
	costs.AddStartupService("team_setup", hoursTeamSetup*pm*cras)
	costs.AddStartupService("team_training", hoursTeamTraining*cra*cras)

	// clinical operations, accruing monthly
	costs.AddStartupService("tmf_maintenance", p.monthly("tmf_maintenance")*months)
	costs.AddStartupService("ctms_update", p.monthly("ctms_update")*months)
	costs.AddStartupService("internal_communication", hoursInternalComms*cra*months)
	costs.AddStartupService("team_management", hoursTeamManagement*pm*jurisdictions*months)
	costs.AddStartupService("visit_report_review", pm*float64(d.TotalQualificationVisits()+d.TotalInitiationVisits()))
	costs.AddStartupService("country_issues_resolution", hoursCountryIssues*pm*jurisdictions*months)
	costs.AddStartupService("sites_setup", hoursSiteSetup*cra*sites)

	addVisits(costs.AddStartupService, p, "initiation_visits_onsite", rates.VisitInitiationOnsite, d.InitiationVisitsOnsite)
	addVisits(costs.AddStartupService, p, "initiation_visits_remote", rates.VisitInitiationRemote, d.InitiationVisitsRemote)

	costs.AddStartupService("passthrough_management", hoursPassthroughAdmin*admin*months)

	startupPassthrough(p, d, costs)

	if p.err != nil {
		return fmt.Errorf("startup costs %s: %w", d.Country, p.err)
	}
	return nil
}

func startupPassthrough(p *pricer, d model.DerivedInputs, costs *model.CostBreakdown) {
	jurisdictions := float64(d.Jurisdictions)
	sites := float64(d.Sites)

	if d.QualificationVisitsOnsite > 0 {
		costs.AddStartupPassthrough("travel_qualification", p.fixed("travel_sqv")*float64(d.QualificationVisitsOnsite))
	}
	if d.InitiationVisitsOnsite > 0 {
		costs.AddStartupPassthrough("travel_initiation", p.fixed("travel_siv")*float64(d.InitiationVisitsOnsite))
	}

	costs.AddStartupPassthrough("translation", p.fixed("translation_cost")*jurisdictions)
	costs.AddStartupPassthrough("copying_printing", p.fixed("copying_printing")*jurisdictions)
	costs.AddStartupPassthrough("communication", p.fixed("communication_expense")*sites)

	if d.Country.IsUS() {
		costs.AddStartupPassthrough("central_irb", p.global("central_irb_fee")*sites*d.StartupMonths)
	}

	costs.AddStartupPassthrough("site_startup_fee", p.fixed("site_startup_fee")*sites)
	costs.AddStartupPassthrough("site_contract_fee", p.fixed("site_contract_fee")*sites)

	onsiteVisits := d.QualificationVisitsOnsite + d.InitiationVisitsOnsite
	costs.AddStartupPassthrough("monitor_visit_fee", p.fixed("monitor_visit_fee")*float64(onsiteVisits))
}

// addVisits emits a visit line only when the region has visits of that kind.
func addVisits(add func(string, float64) *model.CostBreakdown, p *pricer, item string, kind rates.VisitKind, count int) {
	if count <= 0 {
		return
	}
	add(item, p.visit(kind)*float64(count))
}

package calculator

import (
	"fmt"
	"math"

	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

const (
	daysPerMonth  = 30.4
	daysPerWeek   = 7
	monthsPerYear = 12

	// Non-US sites are paid quarterly.
	sitePaymentIntervalMonths = 3
)

// DeriveInputs expands one region entry into the quantities the cost formulas
// consume. An inactive region yields a zero value carrying only its code.
func DeriveInputs(project *model.ProjectInput, country model.CountryInput, table *rates.Table) (model.DerivedInputs, error) {
	if !country.IsActive() {
		return model.DerivedInputs{Country: country.Country}, nil
	}

	p := newPricer(table, country.Country)
	startupMonths, err := table.StartupMonths(country.Country)
	if err != nil {
		return model.DerivedInputs{}, err
	}

	sites := country.Sites
	activeMonths := project.ActivePhaseDuration()

	d := model.DerivedInputs{
		Country:           country.Country,
		Sites:             sites,
		Patients:          country.Patients,
		StartupMonths:     startupMonths,
		ActivePhaseMonths: activeMonths,
		TotalMonths:       int(math.Ceil(startupMonths)) + activeMonths,

		SitesContacted:      roundCount(p.global("site_multiplier_contacted") * float64(sites)),
		SitesCDAs:           roundCount(p.global("site_multiplier_cdas") * float64(sites)),
		SitesQuestionnaires: roundCount(p.global("site_multiplier_questionnaires") * float64(sites)),

		MonitoringVisitsOnsite: country.MonitoringVisitsOnsite * sites,
		UnblindedVisits:        country.UnblindedVisits * sites,

		SiteMonthsActive: activeMonths * sites,

		SAEs:                        roundCount(project.SAERate * float64(country.Patients)),
		ExpeditedSafetySubmissions:  expeditedSubmissions(activeMonths, project.SUSARsWeeks),
		PeriodicSafetyNotifications: roundCount(float64(activeMonths) / monthsPerYear),

		Jurisdictions:          country.Jurisdictions(),
		AnnualSubmissionCycles: roundCount(float64(activeMonths) / monthsPerYear),
		CRAsRequired:           crasRequired(project),
	}

	d.QualificationVisitsOnsite, d.QualificationVisitsRemote = modalityCounts(p,
		project.QualificationVisitType, "qualification_onsite_pct", "qualification_remote_pct", sites)
	d.InitiationVisitsOnsite, d.InitiationVisitsRemote = modalityCounts(p,
		project.InitiationVisitType, "initiation_onsite_pct", "initiation_remote_pct", sites)
	d.CloseoutVisitsOnsite, d.CloseoutVisitsRemote = modalityCounts(p,
		project.CloseoutVisitType, "closeout_onsite_pct", "closeout_remote_pct", sites)

	// Remote monitoring add-on pricing exists only in the US price book.
	if country.Country.IsUS() {
		d.MonitoringVisitsRemote = country.MonitoringVisitsRemote * sites
		d.SitePayments = activeMonths * sites
	} else {
		d.SitePayments = roundCount(float64(activeMonths) / sitePaymentIntervalMonths * float64(sites))
	}

	if p.err != nil {
		return model.DerivedInputs{}, fmt.Errorf("derive %s: %w", country.Country, p.err)
	}
	return d, nil
}

// modalityCounts prices only the modality selected for the visit kind; the
// other one stays at zero.
func modalityCounts(p *pricer, selected model.VisitType, onsiteKey, remoteKey string, sites int) (onsite, remote int) {
	switch selected {
	case model.VisitOnSite:
		return roundCount(p.global(onsiteKey) * float64(sites)), 0
	case model.VisitRemote:
		return 0, roundCount(p.global(remoteKey) * float64(sites))
	default:
		return 0, 0
	}
}

func expeditedSubmissions(activeMonths, susarsWeeks int) int {
	if susarsWeeks <= 0 {
		return 0
	}
	weeks := float64(activeMonths) * daysPerMonth / daysPerWeek
	return roundCount(weeks / float64(susarsWeeks))
}

// crasRequired staffs a second CRA for unblinding when any region has
// unblinded visits.
func crasRequired(project *model.ProjectInput) int {
	if project.HasUnblindedVisits() {
		return 2
	}
	return 1
}

// roundCount rounds half away from zero.
func roundCount(v float64) int {
	return int(math.Round(v))
}

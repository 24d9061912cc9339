package model

// DerivedInputs holds the intermediate quantities of one region. It is computed
// per calculation and never written back.
type DerivedInputs struct {
	Country  Region
	Sites    int
	Patients int

	StartupMonths     float64
	ActivePhaseMonths int
	TotalMonths       int

	SitesContacted      int
	SitesCDAs           int
	SitesQuestionnaires int

	QualificationVisitsOnsite int
	QualificationVisitsRemote int
	InitiationVisitsOnsite    int
	InitiationVisitsRemote    int
	MonitoringVisitsOnsite    int
	MonitoringVisitsRemote    int
	UnblindedVisits           int
	CloseoutVisitsOnsite      int
	CloseoutVisitsRemote      int

	SiteMonthsActive int
	SitePayments     int

	SAEs                        int
	ExpeditedSafetySubmissions  int
	PeriodicSafetyNotifications int

	Jurisdictions          int
	AnnualSubmissionCycles int

	CRAsRequired int
}

func (d DerivedInputs) TotalQualificationVisits() int {
	return d.QualificationVisitsOnsite + d.QualificationVisitsRemote
}

func (d DerivedInputs) TotalInitiationVisits() int {
	return d.InitiationVisitsOnsite + d.InitiationVisitsRemote
}

func (d DerivedInputs) TotalCloseoutVisits() int {
	return d.CloseoutVisitsOnsite + d.CloseoutVisitsRemote
}

func (d DerivedInputs) TotalOnsiteVisits() int {
	return d.QualificationVisitsOnsite +
		d.InitiationVisitsOnsite +
		d.MonitoringVisitsOnsite +
		d.UnblindedVisits +
		d.CloseoutVisitsOnsite
}

// TotalActiveVisits counts every active-phase visit that produces a report.
// Remote monitoring is already zero outside the US.
func (d DerivedInputs) TotalActiveVisits() int {
	return d.MonitoringVisitsOnsite +
		d.MonitoringVisitsRemote +
		d.UnblindedVisits +
		d.CloseoutVisitsOnsite +
		d.CloseoutVisitsRemote
}

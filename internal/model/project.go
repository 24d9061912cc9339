package model

const CloseoutAllowanceMonths = 3

type CountryInput struct {
	Country                Region
	Sites                  int
	Patients               int
	MonitoringVisitsOnsite int
	MonitoringVisitsRemote int
	UnblindedVisits        int
	// Number of EC/IRB jurisdictions behind this region entry. Nil falls back to
	// the per-region default in Jurisdictions.
	CountriesInRegion *int
}

func (c CountryInput) IsActive() bool {
	return c.Sites > 0
}

// HasUnblindedVisits ignores inactive entries; the form keeps the unblinded
// count of a region it switched off.
func (c CountryInput) HasUnblindedVisits() bool {
	return c.IsActive() && c.UnblindedVisits > 0
}

// Jurisdictions returns the number of ethics committees / IRBs the region entry
// stands for. Regions made of many small markets count one per site.
func (c CountryInput) Jurisdictions() int {
	if c.CountriesInRegion != nil {
		return *c.CountriesInRegion
	}

	switch c.Country {
	case RegionNonEU, RegionGeorgia, RegionUkraine:
		return c.Sites
	case RegionUS, RegionTurkiye, RegionEUCEE, RegionEUWest:
		if c.Sites > 0 {
			return 1
		}
		return 0
	default:
		if c.Sites > 0 {
			return 1
		}
		return 0
	}
}

type ProjectInput struct {
	EnrollmentMonths            int
	TreatmentMonths             int
	FollowupMonths              int
	QualificationVisitType      VisitType
	InitiationVisitType         VisitType
	CloseoutVisitType           VisitType
	SAERate                     float64
	SUSARsWeeks                 int
	Vendors                     int
	InvestigatorGrantPerPatient *float64

	countries map[Region]CountryInput
}

// NewProjectInput returns a project carrying the calculator form defaults.
func NewProjectInput() *ProjectInput {
	return &ProjectInput{
		EnrollmentMonths:       12,
		TreatmentMonths:        4,
		FollowupMonths:         12,
		QualificationVisitType: VisitOnSite,
		InitiationVisitType:    VisitRemote,
		CloseoutVisitType:      VisitRemote,
		SAERate:                0.15,
		SUSARsWeeks:            13,
		Vendors:                1,
		countries:              make(map[Region]CountryInput),
	}
}

// AddCountry registers a region. A second entry for the same region replaces the first.
func (p *ProjectInput) AddCountry(country CountryInput) *ProjectInput {
	if p.countries == nil {
		p.countries = make(map[Region]CountryInput)
	}
	p.countries[country.Country] = country
	return p
}

func (p *ProjectInput) Country(region Region) (CountryInput, bool) {
	c, ok := p.countries[region]
	return c, ok
}

// Countries returns all registered regions in presentation order.
func (p *ProjectInput) Countries() []CountryInput {
	out := make([]CountryInput, 0, len(p.countries))
	for _, region := range allRegions {
		if c, ok := p.countries[region]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *ProjectInput) ActiveCountries() []CountryInput {
	out := make([]CountryInput, 0, len(p.countries))
	for _, c := range p.Countries() {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

func (p *ProjectInput) TotalSites() int {
	total := 0
	for _, c := range p.countries {
		total += c.Sites
	}
	return total
}

func (p *ProjectInput) TotalPatients() int {
	total := 0
	for _, c := range p.countries {
		total += c.Patients
	}
	return total
}

func (p *ProjectInput) ActiveCountryCount() int {
	return len(p.ActiveCountries())
}

func (p *ProjectInput) HasUnblindedVisits() bool {
	for _, c := range p.countries {
		if c.HasUnblindedVisits() {
			return true
		}
	}
	return false
}

func (p *ProjectInput) HasEUCountries() bool {
	for _, c := range p.countries {
		if c.Country.IsEU() && c.IsActive() {
			return true
		}
	}
	return false
}

// ActivePhaseDuration covers enrollment, treatment, follow-up and the close-out allowance.
func (p *ProjectInput) ActivePhaseDuration() int {
	return p.EnrollmentMonths + p.TreatmentMonths + p.FollowupMonths + CloseoutAllowanceMonths
}

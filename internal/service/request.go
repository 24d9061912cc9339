package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/cromos/ballpark/internal/model"
)

// EstimateRequest is the calculation payload posted by the calculator form.
// Absent project fields take the form defaults. Whole-number fields accept
// fractional JSON numbers and truncate them, since the form posts parseFloat
// values. The grant is read from investigator_grant or, for older clients,
// investigator_grant_per_patient.
type EstimateRequest struct {
	EnrollmentMonths            *float64                  `json:"enrollment_months,omitempty"`
	TreatmentMonths             *float64                  `json:"treatment_months,omitempty"`
	FollowupMonths              *float64                  `json:"followup_months,omitempty"`
	QualificationVisitType      string                    `json:"qualification_visit_type,omitempty"`
	InitiationVisitType         string                    `json:"initiation_visit_type,omitempty"`
	CloseoutVisitType           string                    `json:"closeout_visit_type,omitempty"`
	SAERate                     *float64                  `json:"sae_rate,omitempty"`
	SUSARsWeeks                 *float64                  `json:"susars_weeks,omitempty"`
	Vendors                     *float64                  `json:"vendors,omitempty"`
	InvestigatorGrant           *float64                  `json:"investigator_grant,omitempty"`
	InvestigatorGrantPerPatient *float64                  `json:"investigator_grant_per_patient,omitempty"`
	Countries                   map[string]CountryRequest `json:"countries" binding:"required"`
}

type CountryRequest struct {
	Sites                  int  `json:"sites"`
	Patients               int  `json:"patients"`
	MonitoringVisitsOnsite int  `json:"monitoring_onsite"`
	MonitoringVisitsRemote int  `json:"monitoring_remote"`
	UnblindedVisits        int  `json:"unblinded_visits"`
	CountriesInRegion      *int `json:"countries_in_region,omitempty"`
}

// Project validates the request and builds the calculator input. Every
// rejection wraps ErrInvalidInput.
func (r EstimateRequest) Project() (*model.ProjectInput, error) {
	p := model.NewProjectInput()

	months := []struct {
		name  string
		value *float64
		dst   *int
	}{
		{"enrollment_months", r.EnrollmentMonths, &p.EnrollmentMonths},
		{"treatment_months", r.TreatmentMonths, &p.TreatmentMonths},
		{"followup_months", r.FollowupMonths, &p.FollowupMonths},
	}
	for _, m := range months {
		if m.value == nil {
			continue
		}
		if *m.value < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, m.name)
		}
		*m.dst = wholeNumber(*m.value)
	}

	visitTypes := []struct {
		name string
		raw  string
		dst  *model.VisitType
	}{
		{"qualification_visit_type", r.QualificationVisitType, &p.QualificationVisitType},
		{"initiation_visit_type", r.InitiationVisitType, &p.InitiationVisitType},
		{"closeout_visit_type", r.CloseoutVisitType, &p.CloseoutVisitType},
	}
	for _, vt := range visitTypes {
		if vt.raw == "" {
			continue
		}
		parsed, err := model.ParseVisitType(vt.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, vt.name, err)
		}
		*vt.dst = parsed
	}

	if r.SAERate != nil {
		if *r.SAERate < 0 || *r.SAERate > 1 {
			return nil, fmt.Errorf("%w: sae_rate must be a fraction between 0 and 1", ErrInvalidInput)
		}
		p.SAERate = *r.SAERate
	}
	if r.SUSARsWeeks != nil {
		weeks := wholeNumber(*r.SUSARsWeeks)
		if weeks < 1 {
			return nil, fmt.Errorf("%w: susars_weeks must be at least 1", ErrInvalidInput)
		}
		p.SUSARsWeeks = weeks
	}
	if r.Vendors != nil {
		vendors := wholeNumber(*r.Vendors)
		if vendors < 1 {
			return nil, fmt.Errorf("%w: vendors must be at least 1", ErrInvalidInput)
		}
		p.Vendors = vendors
	}

	grant, err := r.grant()
	if err != nil {
		return nil, err
	}
	p.InvestigatorGrantPerPatient = grant

	if len(r.Countries) == 0 {
		return nil, fmt.Errorf("%w: countries are required", ErrInvalidInput)
	}

	// Sorted so that the first reported error does not depend on map order.
	keys := make([]string, 0, len(r.Countries))
	for key := range r.Countries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[model.Region]string, len(keys))
	for _, key := range keys {
		region, err := model.ParseRegion(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if other, dup := seen[region]; dup {
			return nil, fmt.Errorf("%w: %q and %q both name region %s", ErrInvalidInput, other, key, region)
		}
		seen[region] = key

		country, err := r.Countries[key].country(region)
		if err != nil {
			return nil, err
		}
		p.AddCountry(country)
	}

	return p, nil
}

// grant resolves the investigator grant from either wire name. Both names may
// be sent only with the same value.
func (r EstimateRequest) grant() (*float64, error) {
	value := r.InvestigatorGrant
	if value == nil {
		value = r.InvestigatorGrantPerPatient
	} else if r.InvestigatorGrantPerPatient != nil && *r.InvestigatorGrantPerPatient != *value {
		return nil, fmt.Errorf("%w: investigator_grant and investigator_grant_per_patient disagree", ErrInvalidInput)
	}
	if value == nil {
		return nil, nil
	}
	if *value < 0 {
		return nil, fmt.Errorf("%w: investigator_grant must not be negative", ErrInvalidInput)
	}
	grant := *value
	return &grant, nil
}

// wholeNumber truncates toward zero.
func wholeNumber(v float64) int {
	return int(math.Trunc(v))
}

func (c CountryRequest) country(region model.Region) (model.CountryInput, error) {
	counts := []struct {
		name  string
		value int
	}{
		{"sites", c.Sites},
		{"patients", c.Patients},
		{"monitoring_onsite", c.MonitoringVisitsOnsite},
		{"monitoring_remote", c.MonitoringVisitsRemote},
		{"unblinded_visits", c.UnblindedVisits},
	}
	for _, count := range counts {
		if count.value < 0 {
			return model.CountryInput{}, fmt.Errorf("%w: %s.%s must not be negative", ErrInvalidInput, region, count.name)
		}
	}
	if c.CountriesInRegion != nil && *c.CountriesInRegion < 0 {
		return model.CountryInput{}, fmt.Errorf("%w: %s.countries_in_region must not be negative", ErrInvalidInput, region)
	}

	var jurisdictions *int
	if c.CountriesInRegion != nil {
		n := *c.CountriesInRegion
		jurisdictions = &n
	}

	return model.CountryInput{
		Country:                region,
		Sites:                  c.Sites,
		Patients:               c.Patients,
		MonitoringVisitsOnsite: c.MonitoringVisitsOnsite,
		MonitoringVisitsRemote: c.MonitoringVisitsRemote,
		UnblindedVisits:        c.UnblindedVisits,
		CountriesInRegion:      jurisdictions,
	}, nil
}

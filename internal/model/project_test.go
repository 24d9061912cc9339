package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectInput_ActivePhaseDuration(t *testing.T) {
	p := NewProjectInput()
	assert.Equal(t, 31, p.ActivePhaseDuration())

	p.EnrollmentMonths, p.TreatmentMonths, p.FollowupMonths = 6, 0, 0
	assert.Equal(t, 9, p.ActivePhaseDuration())
}

func TestCountryInput_Jurisdictions(t *testing.T) {
	four := 4
	tests := []struct {
		name    string
		country CountryInput
		want    int
	}{
		{name: "non-EU counts every site", country: CountryInput{Country: RegionNonEU, Sites: 15}, want: 15},
		{name: "Georgia counts every site", country: CountryInput{Country: RegionGeorgia, Sites: 3}, want: 3},
		{name: "US is one IRB", country: CountryInput{Country: RegionUS, Sites: 5}, want: 1},
		{name: "EU country is one", country: CountryInput{Country: RegionEUWest, Sites: 7}, want: 1},
		{name: "inactive", country: CountryInput{Country: RegionTurkiye}, want: 0},
		{name: "explicit count wins", country: CountryInput{Country: RegionNonEU, Sites: 15, CountriesInRegion: &four}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.country.Jurisdictions())
		})
	}
}

func TestProjectInput_Countries(t *testing.T) {
	p := NewProjectInput()
	p.AddCountry(CountryInput{Country: RegionUkraine, Sites: 2, Patients: 10})
	p.AddCountry(CountryInput{Country: RegionUS, Sites: 5, Patients: 15})
	p.AddCountry(CountryInput{Country: RegionEUWest})
	p.AddCountry(CountryInput{Country: RegionUS, Sites: 3, Patients: 9})

	countries := p.Countries()
	if assert.Len(t, countries, 3) {
		assert.Equal(t, RegionUS, countries[0].Country)
		assert.Equal(t, 3, countries[0].Sites, "second entry replaces the first")
		assert.Equal(t, RegionEUWest, countries[1].Country)
		assert.Equal(t, RegionUkraine, countries[2].Country)
	}

	assert.Equal(t, 2, p.ActiveCountryCount())
	assert.Equal(t, 5, p.TotalSites())
	assert.Equal(t, 19, p.TotalPatients())
	assert.False(t, p.HasEUCountries(), "an EU entry without sites is not active")
	assert.False(t, p.HasUnblindedVisits())

	p.AddCountry(CountryInput{Country: RegionEUCEE, UnblindedVisits: 4})
	assert.False(t, p.HasUnblindedVisits(), "unblinded visits of a region without sites do not count")

	p.AddCountry(CountryInput{Country: RegionEUCEE, Sites: 1, UnblindedVisits: 1})
	assert.True(t, p.HasEUCountries())
	assert.True(t, p.HasUnblindedVisits())
}

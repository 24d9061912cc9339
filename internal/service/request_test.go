package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromos/ballpark/internal/model"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestEstimateRequest_ProjectDefaults(t *testing.T) {
	req := EstimateRequest{Countries: map[string]CountryRequest{"us": {Sites: 5, Patients: 15}}}

	p, err := req.Project()
	require.NoError(t, err)

	assert.Equal(t, 12, p.EnrollmentMonths)
	assert.Equal(t, model.VisitOnSite, p.QualificationVisitType)
	assert.Equal(t, 0.15, p.SAERate)
	assert.Equal(t, 1, p.Vendors)
	assert.Nil(t, p.InvestigatorGrantPerPatient)

	us, ok := p.Country(model.RegionUS)
	require.True(t, ok)
	assert.Equal(t, 5, us.Sites)
}

func TestEstimateRequest_ProjectOverrides(t *testing.T) {
	req := EstimateRequest{
		EnrollmentMonths:  floatPtr(6),
		CloseoutVisitType: "On-Site",
		SAERate:           floatPtr(0.3),
		InvestigatorGrant: floatPtr(2500),
		Countries: map[string]CountryRequest{
			"Non_EU": {Sites: 4, Patients: 8, CountriesInRegion: intPtr(2)},
		},
	}

	p, err := req.Project()
	require.NoError(t, err)
	assert.Equal(t, 6, p.EnrollmentMonths)
	assert.Equal(t, model.VisitOnSite, p.CloseoutVisitType)
	assert.Equal(t, 0.3, p.SAERate)
	require.NotNil(t, p.InvestigatorGrantPerPatient)
	assert.Equal(t, 2500.0, *p.InvestigatorGrantPerPatient)

	nonEU, ok := p.Country(model.RegionNonEU)
	require.True(t, ok)
	assert.Equal(t, 2, nonEU.Jurisdictions())
}

func TestEstimateRequest_ProjectInvalid(t *testing.T) {
	valid := map[string]CountryRequest{"us": {Sites: 1, Patients: 1}}
	tests := []struct {
		name string
		req  EstimateRequest
	}{
		{"no countries", EstimateRequest{}},
		{"negative months", EstimateRequest{FollowupMonths: floatPtr(-1), Countries: valid}},
		{"unknown visit type", EstimateRequest{InitiationVisitType: "phone", Countries: valid}},
		{"sae rate above one", EstimateRequest{SAERate: floatPtr(1.5), Countries: valid}},
		{"susar interval under a week", EstimateRequest{SUSARsWeeks: floatPtr(0.5), Countries: valid}},
		{"zero vendors", EstimateRequest{Vendors: floatPtr(0), Countries: valid}},
		{"negative grant", EstimateRequest{InvestigatorGrant: floatPtr(-1), Countries: valid}},
		{"conflicting grant names", EstimateRequest{InvestigatorGrant: floatPtr(1000), InvestigatorGrantPerPatient: floatPtr(900), Countries: valid}},
		{"unknown region", EstimateRequest{Countries: map[string]CountryRequest{"mars": {Sites: 1}}}},
		{"duplicate alias", EstimateRequest{Countries: map[string]CountryRequest{"EU_CEE": {Sites: 1}, "eucee": {Sites: 2}}}},
		{"negative sites", EstimateRequest{Countries: map[string]CountryRequest{"us": {Sites: -1}}}},
		{"negative jurisdictions", EstimateRequest{Countries: map[string]CountryRequest{"us": {Sites: 1, CountriesInRegion: intPtr(-2)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Project()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEstimateRequest_DecodesFormPayload(t *testing.T) {
	raw := `{
		"enrollment_months": 10.7,
		"susars_weeks": 13.5,
		"vendors": 2.0,
		"investigator_grant": 1000,
		"countries": {
			"us": {"sites": 5, "patients": 15},
			"eucee": {"sites": 0, "patients": 0, "unblinded_visits": 3}
		}
	}`

	var req EstimateRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	p, err := req.Project()
	require.NoError(t, err)
	assert.Equal(t, 10, p.EnrollmentMonths)
	assert.Equal(t, 13, p.SUSARsWeeks)
	assert.Equal(t, 2, p.Vendors)
	require.NotNil(t, p.InvestigatorGrantPerPatient)
	assert.Equal(t, 1000.0, *p.InvestigatorGrantPerPatient)
	assert.False(t, p.HasUnblindedVisits(), "switched-off region keeps its unblinded count")
}

func TestEstimateRequest_GrantNames(t *testing.T) {
	valid := map[string]CountryRequest{"us": {Sites: 1, Patients: 1}}

	p, err := EstimateRequest{InvestigatorGrantPerPatient: floatPtr(800), Countries: valid}.Project()
	require.NoError(t, err)
	require.NotNil(t, p.InvestigatorGrantPerPatient)
	assert.Equal(t, 800.0, *p.InvestigatorGrantPerPatient)

	p, err = EstimateRequest{InvestigatorGrant: floatPtr(800), InvestigatorGrantPerPatient: floatPtr(800), Countries: valid}.Project()
	require.NoError(t, err)
	assert.Equal(t, 800.0, *p.InvestigatorGrantPerPatient)
}

package rates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromos/ballpark/internal/model"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", table.Version())
	assert.Equal(t, "USD", table.Currency())
	assert.Equal(t, model.AllRegions(), table.Regions().All)
}

func TestTable_RequiredLookups(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	rate, err := table.HourlyRate(RoleCRA, model.RegionUS)
	require.NoError(t, err)
	assert.Equal(t, 190.0, rate)

	months, err := table.StartupMonths(model.RegionGeorgia)
	require.NoError(t, err)
	assert.Equal(t, 5.3, months)

	hours, err := table.VisitHours(VisitInitiationOnsite, model.RegionGeorgia)
	require.NoError(t, err)
	assert.Equal(t, 19, hours)

	_, err = table.HourlyRate(Role("translator"), model.RegionUS)
	assert.ErrorIs(t, err, ErrMissingRate)

	_, err = table.Global("no_such_constant")
	assert.ErrorIs(t, err, ErrMissingRate)

	_, err = table.StartupMonths(model.GlobalRegion)
	assert.ErrorIs(t, err, ErrMissingRate)

	_, err = table.RegulatoryHours("no_such_submission")
	assert.ErrorIs(t, err, ErrMissingRate)
}

func TestTable_OptionalLookupsDefaultToZero(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 0.0, table.FixedCost("site_contract_fee", model.RegionNonEU))
	assert.Equal(t, 0.0, table.FixedCost("monitor_visit_fee", model.RegionEUWest))
	assert.Equal(t, 0.0, table.MonthlyCost("no_such_cost", model.RegionUS))
	assert.Equal(t, 2000.0, table.FixedCost("site_contract_fee", model.RegionUS))
	assert.Equal(t, 255.64, table.MonthlyCost("tmf_maintenance", model.RegionNonEU))
}

func TestTable_RegulatoryHours(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	major, err := table.RegulatoryHours("major_ra_submission")
	require.NoError(t, err)
	assert.True(t, major.IsComposite())
	assert.Equal(t, map[string]int{"ra_hours": 24, "cra_hours": 16, "ra_followup_hours": 10}, major.Parts)

	hours, err := table.ScalarRegulatoryHours("country_dossier")
	require.NoError(t, err)
	assert.Equal(t, 100, hours)

	_, err = table.ScalarRegulatoryHours("major_ra_submission")
	assert.ErrorIs(t, err, ErrMissingRate)

	_, err = table.RegulatoryPart("major_ra_submission", "qa_hours")
	assert.ErrorIs(t, err, ErrMissingRate)
}

func TestTable_DerivedCosts(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	visit, err := table.VisitCost(VisitMonitoringOnsite, model.RegionEUCEE)
	require.NoError(t, err)
	assert.Equal(t, 18*119.0, visit)

	monthly, err := table.SiteManagementMonthlyCost(model.RegionUS)
	require.NoError(t, err)
	assert.Equal(t, 1694.0, monthly)

	template, err := table.ContractTemplateCost(model.RegionUkraine)
	require.NoError(t, err)
	assert.Equal(t, 16*81.0, template)

	negotiation, err := table.ContractNegotiationCost(model.RegionUkraine)
	require.NoError(t, err)
	assert.Equal(t, 32*81.0, negotiation)

	major, err := table.MajorRASubmissionCost(model.RegionUS)
	require.NoError(t, err)
	assert.Equal(t, 12730.0, major)
}

func TestLoad_Validation(t *testing.T) {
	card := string(defaultRateCard)

	tests := []struct {
		name string
		old  string
		new  string
	}{
		{
			name: "overlapping region groups",
			old:  "non_eu: [Non_EU, Georgia, Turkiye, Ukraine]",
			new:  "non_eu: [Non_EU, Georgia, Turkiye, Ukraine, EU_CEE]",
		},
		{
			name: "region in the wrong group",
			old:  "us: [US]",
			new:  "us: [US, Georgia]",
		},
		{
			name: "region outside every group",
			old:  "all: [US, EU_CEE",
			new:  "all: [Mars, US, EU_CEE",
		},
		{
			name: "missing required global",
			old:  "  central_irb_fee: 750\n",
			new:  "",
		},
		{
			name: "missing hourly rate",
			old:  "    Ukraine: 65\n  pm:",
			new:  "  pm:",
		},
		{
			name: "missing regulatory hours",
			old:  "  periodic_safety_ra: 8\n",
			new:  "",
		},
		{
			name: "negative startup months",
			old:  "  US: 4\n",
			new:  "  US: -4\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, card, tt.old)
			_, err := Load([]byte(strings.Replace(card, tt.old, tt.new, 1)))
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("global: [unterminated"))
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = Load([]byte("regulatory_hours:\n  country_dossier: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, defaultRateCard, 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", table.Version())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTable)
}

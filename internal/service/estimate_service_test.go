package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromos/ballpark/internal/calculator"
	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

type stubGenerator struct {
	calls  int
	last   model.EstimateReport
	output []byte
	err    error
}

func (g *stubGenerator) Generate(report model.EstimateReport) ([]byte, error) {
	g.calls++
	g.last = report
	return g.output, g.err
}

func newService(t *testing.T, cacheSize int, excel, pdf ReportGenerator) *EstimateService {
	t.Helper()
	table, err := rates.Default()
	require.NoError(t, err)
	svc, err := NewEstimateService(calculator.New(table), excel, pdf, cacheSize, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func usRequest() EstimateRequest {
	return EstimateRequest{Countries: map[string]CountryRequest{
		"US": {Sites: 5, Patients: 15, MonitoringVisitsOnsite: 4, MonitoringVisitsRemote: 12},
	}}
}

func TestEstimateService_Calculate(t *testing.T) {
	svc := newService(t, 0, nil, nil)

	estimate, err := svc.Calculate(context.Background(), usRequest())
	require.NoError(t, err)

	us, ok := estimate.Country(model.RegionUS)
	require.True(t, ok)
	assert.Greater(t, us.GrandTotal(), 0.0)
	assert.Greater(t, estimate.Totals.GrandTotal, 0.0)
}

func TestEstimateService_CacheSharesAliases(t *testing.T) {
	svc := newService(t, 8, nil, nil)

	first, err := svc.Calculate(context.Background(), usRequest())
	require.NoError(t, err)

	alias := EstimateRequest{
		EnrollmentMonths: floatPtr(12),
		Countries: map[string]CountryRequest{
			"us": {Sites: 5, Patients: 15, MonitoringVisitsOnsite: 4, MonitoringVisitsRemote: 12},
		},
	}
	second, err := svc.Calculate(context.Background(), alias)
	require.NoError(t, err)
	assert.Same(t, first, second)

	other := usRequest()
	other.Vendors = floatPtr(3)
	third, err := svc.Calculate(context.Background(), other)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestEstimateService_CanceledContext(t *testing.T) {
	svc := newService(t, 0, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, usRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimateService_InvalidInput(t *testing.T) {
	svc := newService(t, 0, nil, nil)

	_, err := svc.Calculate(context.Background(), EstimateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEstimateService_ExportXLSX(t *testing.T) {
	excel := &stubGenerator{output: []byte("xlsx")}
	svc := newService(t, 0, excel, nil)

	result, err := svc.ExportXLSX(context.Background(), usRequest())
	require.NoError(t, err)

	assert.Equal(t, []byte("xlsx"), result.Content)
	assert.Equal(t, ContentTypeXLSX, result.ContentType)
	assert.True(t, strings.HasPrefix(result.FileName, "ballpark-"))
	assert.True(t, strings.HasSuffix(result.FileName, ".xlsx"))

	require.Equal(t, 1, excel.calls)
	assert.Equal(t, "USD", excel.last.Currency)
	assert.Equal(t, 5, excel.last.Project.TotalSites)
	assert.NotNil(t, excel.last.Estimate)
}

func TestEstimateService_ExportPDFErrors(t *testing.T) {
	svc := newService(t, 0, nil, nil)
	_, err := svc.ExportPDF(context.Background(), usRequest())
	assert.ErrorIs(t, err, ErrConfiguration)

	failing := &stubGenerator{err: errors.New("boom")}
	svc = newService(t, 0, nil, failing)
	_, err = svc.ExportPDF(context.Background(), usRequest())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestEstimateService_InvestigatorGrantWireName(t *testing.T) {
	svc := newService(t, 0, nil, nil)

	req := usRequest()
	req.InvestigatorGrant = floatPtr(1000)
	estimate, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	us, ok := estimate.Country(model.RegionUS)
	require.True(t, ok)
	grants, ok := us.ActivePassthrough().Get("investigator_grants")
	require.True(t, ok)
	assert.Equal(t, 15000.0, grants)
}

func TestEstimateService_SwitchedOffRegionIsIgnored(t *testing.T) {
	svc := newService(t, 0, nil, nil)

	want, err := svc.Calculate(context.Background(), usRequest())
	require.NoError(t, err)

	req := usRequest()
	req.Countries["EU_CEE"] = CountryRequest{UnblindedVisits: 3}
	got, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, want.Totals, got.Totals)
	_, ok := got.Global.StartupService().Get("unblinded_monitoring_plan")
	assert.False(t, ok)
}

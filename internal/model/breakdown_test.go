package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundThousand(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 12345.67, want: 12000},
		{in: 3210, want: 3000},
		{in: 1500, want: 2000},
		{in: 2500, want: 3000},
		{in: 499.99, want: 0},
		{in: 0, want: 0},
		{in: -1500, want: -2000},
	}
	for _, tt := range tests {
		got := RoundThousand(tt.in)
		assert.Equal(t, tt.want, got, "RoundThousand(%v)", tt.in)
		assert.Equal(t, got, RoundThousand(got), "idempotent for %v", tt.in)
	}
}

func TestLineItems_SetOverwrites(t *testing.T) {
	var items LineItems
	items.Set("b", 1)
	items.Set("a", 2)
	items.Set("b", 5)

	assert.Equal(t, []string{"b", "a"}, items.Names())
	assert.Equal(t, 7.0, items.Total())

	v, ok := items.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
}

func TestCostBreakdown_Totals(t *testing.T) {
	b := NewCostBreakdown(RegionUS).
		AddStartupService("x", 10000).
		AddStartupService("y", 2345.67).
		AddStartupPassthrough("z", 3210).
		AddActiveService("w", 40400).
		AddActivePassthrough("v", 600)

	assert.InDelta(t, 12345.67, b.StartupServiceTotal(), 1e-9)
	assert.InDelta(t, 15555.67, b.StartupTotal(), 1e-9)
	assert.Equal(t, 41000.0, b.ActiveTotal())
	assert.InDelta(t, 52745.67, b.ServiceTotal(), 1e-9)
	assert.Equal(t, 3810.0, b.PassthroughTotal())

	assert.Equal(t, 12000.0, b.RoundedStartupService())
	assert.Equal(t, 3000.0, b.RoundedStartupPassthrough())
	assert.Equal(t, 15000.0, b.RoundedStartupTotal(), "rounded per category before summing")
	assert.Equal(t, 41000.0, b.RoundedActiveTotal())
	assert.Equal(t, 56000.0, b.RoundedGrandTotal())
	assert.False(t, b.IsEmpty())
	assert.True(t, NewCostBreakdown(GlobalRegion).IsEmpty())
}

func TestCostBreakdown_MarshalJSON(t *testing.T) {
	b := NewCostBreakdown(RegionEUCEE).
		AddStartupService("second", 1200).
		AddStartupService("first", 300.5)

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"service":{"second":1200,"first":300.5}`)
	assert.JSONEq(t, `{
		"country": "EU_CEE",
		"startup": {"service": {"second": 1200, "first": 300.5}, "service_total": 2000, "passthrough": {}, "passthrough_total": 0, "total": 2000},
		"active": {"service": {}, "service_total": 0, "passthrough": {}, "passthrough_total": 0, "total": 0},
		"totals": {"service": 2000, "passthrough": 0, "grand_total": 2000}
	}`, string(raw))
}

func TestEstimate_MarshalJSON(t *testing.T) {
	e := &Estimate{
		Countries: []*CostBreakdown{
			NewCostBreakdown(RegionUS).AddActiveService("a", 1000),
			NewCostBreakdown(RegionGeorgia).AddActiveService("b", 2000),
		},
		Totals: Totals{Active: 3000, GrandTotal: 3000},
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, string(decoded["countries"]), `{"US":{`)
	assert.Contains(t, string(decoded["global"]), `"country":"GLOBAL"`)
	assert.JSONEq(t, `{"startup":0,"active":3000,"grand_total":3000}`, string(decoded["totals"]))

	require.Len(t, e.Breakdowns(), 2, "nil global is skipped")
	b, ok := e.Country(RegionGeorgia)
	require.True(t, ok)
	assert.Equal(t, 2000.0, b.ActiveTotal())
}

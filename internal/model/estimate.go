package model

import (
	"bytes"
	"encoding/json"
)

type Totals struct {
	Startup    float64 `json:"startup"`
	Active     float64 `json:"active"`
	GrandTotal float64 `json:"grand_total"`
}

// Estimate is the full result of one calculation: one breakdown per active
// region in presentation order, the project-wide breakdown and the rolled-up totals.
type Estimate struct {
	Countries []*CostBreakdown
	Global    *CostBreakdown
	Totals    Totals
}

func (e *Estimate) Country(region Region) (*CostBreakdown, bool) {
	for _, b := range e.Countries {
		if b.Country == region {
			return b, true
		}
	}
	return nil, false
}

// Breakdowns returns the global breakdown followed by the regional ones.
func (e *Estimate) Breakdowns() []*CostBreakdown {
	out := make([]*CostBreakdown, 0, len(e.Countries)+1)
	if e.Global != nil {
		out = append(out, e.Global)
	}
	return append(out, e.Countries...)
}

func (e *Estimate) MarshalJSON() ([]byte, error) {
	var countries bytes.Buffer
	countries.WriteByte('{')
	for i, b := range e.Countries {
		if i > 0 {
			countries.WriteByte(',')
		}
		key, err := json.Marshal(b.Country)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		countries.Write(key)
		countries.WriteByte(':')
		countries.Write(value)
	}
	countries.WriteByte('}')

	global := e.Global
	if global == nil {
		global = NewCostBreakdown(GlobalRegion)
	}

	return json.Marshal(struct {
		Countries json.RawMessage `json:"countries"`
		Global    *CostBreakdown  `json:"global"`
		Totals    Totals          `json:"totals"`
	}{
		Countries: countries.Bytes(),
		Global:    global,
		Totals:    e.Totals,
	})
}

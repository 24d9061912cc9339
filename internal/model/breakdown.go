package model

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RoundThousand rounds a ballpark amount to the nearest thousand, half away from zero.
func RoundThousand(value float64) float64 {
	return decimal.NewFromFloat(value).Round(-3).InexactFloat64()
}

// LineItems maps item names to amounts and remembers insertion order so that
// exports and JSON list items the way the calculators emit them.
type LineItems struct {
	names  []string
	values map[string]float64
}

// Set writes an item. Writing an existing name replaces its amount in place.
func (l *LineItems) Set(name string, amount float64) {
	if l.values == nil {
		l.values = make(map[string]float64)
	}
	if _, exists := l.values[name]; !exists {
		l.names = append(l.names, name)
	}
	l.values[name] = amount
}

func (l *LineItems) Get(name string) (float64, bool) {
	v, ok := l.values[name]
	return v, ok
}

func (l *LineItems) Len() int {
	return len(l.names)
}

func (l *LineItems) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

func (l *LineItems) Total() float64 {
	total := 0.0
	for _, name := range l.names {
		total += l.values[name]
	}
	return total
}

func (l *LineItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range l.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(l.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CostBreakdown collects the line items of one region (or of GlobalRegion)
// split by phase and by service / pass-through. Totals are always computed on demand.
type CostBreakdown struct {
	Country Region

	startupService     LineItems
	startupPassthrough LineItems
	activeService      LineItems
	activePassthrough  LineItems
}

func NewCostBreakdown(country Region) *CostBreakdown {
	return &CostBreakdown{Country: country}
}

func (b *CostBreakdown) AddStartupService(item string, cost float64) *CostBreakdown {
	b.startupService.Set(item, cost)
	return b
}

func (b *CostBreakdown) AddStartupPassthrough(item string, cost float64) *CostBreakdown {
	b.startupPassthrough.Set(item, cost)
	return b
}

func (b *CostBreakdown) AddActiveService(item string, cost float64) *CostBreakdown {
	b.activeService.Set(item, cost)
	return b
}

func (b *CostBreakdown) AddActivePassthrough(item string, cost float64) *CostBreakdown {
	b.activePassthrough.Set(item, cost)
	return b
}

func (b *CostBreakdown) StartupService() *LineItems     { return &b.startupService }
func (b *CostBreakdown) StartupPassthrough() *LineItems { return &b.startupPassthrough }
func (b *CostBreakdown) ActiveService() *LineItems      { return &b.activeService }
func (b *CostBreakdown) ActivePassthrough() *LineItems  { return &b.activePassthrough }

func (b *CostBreakdown) IsEmpty() bool {
	return b.startupService.Len() == 0 &&
		b.startupPassthrough.Len() == 0 &&
		b.activeService.Len() == 0 &&
		b.activePassthrough.Len() == 0
}

func (b *CostBreakdown) StartupServiceTotal() float64     { return b.startupService.Total() }
func (b *CostBreakdown) StartupPassthroughTotal() float64 { return b.startupPassthrough.Total() }
func (b *CostBreakdown) ActiveServiceTotal() float64      { return b.activeService.Total() }
func (b *CostBreakdown) ActivePassthroughTotal() float64  { return b.activePassthrough.Total() }

func (b *CostBreakdown) StartupTotal() float64 {
	return b.StartupServiceTotal() + b.StartupPassthroughTotal()
}

func (b *CostBreakdown) ActiveTotal() float64 {
	return b.ActiveServiceTotal() + b.ActivePassthroughTotal()
}

func (b *CostBreakdown) ServiceTotal() float64 {
	return b.StartupServiceTotal() + b.ActiveServiceTotal()
}

func (b *CostBreakdown) PassthroughTotal() float64 {
	return b.StartupPassthroughTotal() + b.ActivePassthroughTotal()
}

func (b *CostBreakdown) GrandTotal() float64 {
	return b.StartupTotal() + b.ActiveTotal()
}

func (b *CostBreakdown) RoundedStartupService() float64 {
	return RoundThousand(b.StartupServiceTotal())
}

func (b *CostBreakdown) RoundedStartupPassthrough() float64 {
	return RoundThousand(b.StartupPassthroughTotal())
}

func (b *CostBreakdown) RoundedActiveService() float64 {
	return RoundThousand(b.ActiveServiceTotal())
}

func (b *CostBreakdown) RoundedActivePassthrough() float64 {
	return RoundThousand(b.ActivePassthroughTotal())
}

func (b *CostBreakdown) RoundedStartupTotal() float64 {
	return b.RoundedStartupService() + b.RoundedStartupPassthrough()
}

func (b *CostBreakdown) RoundedActiveTotal() float64 {
	return b.RoundedActiveService() + b.RoundedActivePassthrough()
}

func (b *CostBreakdown) RoundedGrandTotal() float64 {
	return b.RoundedStartupTotal() + b.RoundedActiveTotal()
}

type phaseJSON struct {
	Service          *LineItems `json:"service"`
	ServiceTotal     float64    `json:"service_total"`
	Passthrough      *LineItems `json:"passthrough"`
	PassthroughTotal float64    `json:"passthrough_total"`
	Total            float64    `json:"total"`
}

type breakdownTotalsJSON struct {
	Service     float64 `json:"service"`
	Passthrough float64 `json:"passthrough"`
	GrandTotal  float64 `json:"grand_total"`
}

type breakdownJSON struct {
	Country Region              `json:"country"`
	Startup phaseJSON           `json:"startup"`
	Active  phaseJSON           `json:"active"`
	Totals  breakdownTotalsJSON `json:"totals"`
}

func (b *CostBreakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(breakdownJSON{
		Country: b.Country,
		Startup: phaseJSON{
			Service:          &b.startupService,
			ServiceTotal:     b.RoundedStartupService(),
			Passthrough:      &b.startupPassthrough,
			PassthroughTotal: b.RoundedStartupPassthrough(),
			Total:            b.RoundedStartupTotal(),
		},
		Active: phaseJSON{
			Service:          &b.activeService,
			ServiceTotal:     b.RoundedActiveService(),
			Passthrough:      &b.activePassthrough,
			PassthroughTotal: b.RoundedActivePassthrough(),
			Total:            b.RoundedActiveTotal(),
		},
		Totals: breakdownTotalsJSON{
			Service:     b.RoundedStartupService() + b.RoundedActiveService(),
			Passthrough: b.RoundedStartupPassthrough() + b.RoundedActivePassthrough(),
			GrandTotal:  b.RoundedGrandTotal(),
		},
	})
}

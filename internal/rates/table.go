// Package rates holds the rate card every calculator prices against: hourly
// rates, visit hour templates, fixed and monthly costs, regulatory hours and
// project-wide constants. A Table is loaded once and is read-only afterwards,
// so it can be shared by concurrent calculations without locking.
package rates

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cromos/ballpark/internal/model"
)

//go:embed rates.yaml
var defaultRateCard []byte

var (
	// ErrMissingRate is returned when a required rate card entry is absent.
	ErrMissingRate = errors.New("missing rate")
	// ErrInvalidTable is returned when a rate card fails validation on load.
	ErrInvalidTable = errors.New("invalid rate table")
)

type Role string

const (
	RoleCRA                 Role = "cra"
	RolePM                  Role = "pm"
	RoleAdmin               Role = "admin"
	RoleRA                  Role = "ra"
	RoleQA                  Role = "qa"
	RoleContract            Role = "contract"
	RoleInvestigatorMeeting Role = "investigator_meeting"
)

var allRoles = []Role{RoleCRA, RolePM, RoleAdmin, RoleRA, RoleQA, RoleContract, RoleInvestigatorMeeting}

type VisitKind string

const (
	VisitQualificationOnsite VisitKind = "qualification_onsite"
	VisitQualificationRemote VisitKind = "qualification_remote"
	VisitInitiationOnsite    VisitKind = "initiation_onsite"
	VisitInitiationRemote    VisitKind = "initiation_remote"
	VisitMonitoringOnsite    VisitKind = "monitoring_onsite"
	VisitMonitoringRemote    VisitKind = "monitoring_remote"
	VisitUnblinded           VisitKind = "unblinded"
	VisitCloseoutOnsite      VisitKind = "closeout_onsite"
	VisitCloseoutRemote      VisitKind = "closeout_remote"
)

var allVisitKinds = []VisitKind{
	VisitQualificationOnsite,
	VisitQualificationRemote,
	VisitInitiationOnsite,
	VisitInitiationRemote,
	VisitMonitoringOnsite,
	VisitMonitoringRemote,
	VisitUnblinded,
	VisitCloseoutOnsite,
	VisitCloseoutRemote,
}

// RegulatoryHours is either a plain hour count or a composite of named parts
// (major_ra_submission: {ra_hours, cra_hours, ra_followup_hours}).
type RegulatoryHours struct {
	Hours int
	Parts map[string]int
}

func (r *RegulatoryHours) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&r.Hours)
	case yaml.MappingNode:
		return value.Decode(&r.Parts)
	default:
		return fmt.Errorf("regulatory hours at line %d: expected number or mapping", value.Line)
	}
}

func (r RegulatoryHours) IsComposite() bool {
	return r.Parts != nil
}

type RegionGroups struct {
	EU    []model.Region `yaml:"eu"`
	NonEU []model.Region `yaml:"non_eu"`
	US    []model.Region `yaml:"us"`
	All   []model.Region `yaml:"all"`
}

type document struct {
	Version         string                              `yaml:"version"`
	Currency        string                              `yaml:"currency"`
	Global          map[string]float64                  `yaml:"global"`
	StartupMonths   map[model.Region]float64            `yaml:"startup_months"`
	HourlyRates     map[Role]map[model.Region]float64   `yaml:"hourly_rates"`
	VisitHours      map[model.Region]map[VisitKind]int  `yaml:"visit_hours"`
	FixedCosts      map[model.Region]map[string]float64 `yaml:"fixed_costs"`
	MonthlyCosts    map[string]map[model.Region]float64 `yaml:"monthly_costs"`
	RegulatoryHours map[string]RegulatoryHours          `yaml:"regulatory_hours"`
	Regions         RegionGroups                        `yaml:"regions"`
}

type Table struct {
	doc document
}

// Default returns the rate card embedded in the binary.
func Default() (*Table, error) {
	return Load(defaultRateCard)
}

func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate card %s: %w", path, err)
	}
	return Load(data)
}

func Load(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidTable, err)
	}
	t := &Table{doc: doc}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) Version() string {
	return t.doc.Version
}

func (t *Table) Currency() string {
	if t.doc.Currency == "" {
		return "USD"
	}
	return t.doc.Currency
}

func (t *Table) Regions() RegionGroups {
	return t.doc.Regions
}

func (t *Table) Global(key string) (float64, error) {
	v, ok := t.doc.Global[key]
	if !ok {
		return 0, fmt.Errorf("%w: global %s", ErrMissingRate, key)
	}
	return v, nil
}

func (t *Table) HourlyRate(role Role, region model.Region) (float64, error) {
	v, ok := t.doc.HourlyRates[role][region]
	if !ok {
		return 0, fmt.Errorf("%w: hourly rate %s/%s", ErrMissingRate, role, region)
	}
	return v, nil
}

func (t *Table) VisitHours(kind VisitKind, region model.Region) (int, error) {
	v, ok := t.doc.VisitHours[region][kind]
	if !ok {
		return 0, fmt.Errorf("%w: visit hours %s/%s", ErrMissingRate, kind, region)
	}
	return v, nil
}

func (t *Table) StartupMonths(region model.Region) (float64, error) {
	v, ok := t.doc.StartupMonths[region]
	if !ok {
		return 0, fmt.Errorf("%w: startup months for %s", ErrMissingRate, region)
	}
	return v, nil
}

// FixedCost is optional: an absent entry prices at zero.
func (t *Table) FixedCost(costType string, region model.Region) float64 {
	return t.doc.FixedCosts[region][costType]
}

// MonthlyCost is optional: an absent entry prices at zero.
func (t *Table) MonthlyCost(costType string, region model.Region) float64 {
	return t.doc.MonthlyCosts[costType][region]
}

func (t *Table) RegulatoryHours(key string) (RegulatoryHours, error) {
	v, ok := t.doc.RegulatoryHours[key]
	if !ok {
		return RegulatoryHours{}, fmt.Errorf("%w: regulatory hours %s", ErrMissingRate, key)
	}
	return v, nil
}

// ScalarRegulatoryHours looks up a plain hour count.
func (t *Table) ScalarRegulatoryHours(key string) (int, error) {
	v, err := t.RegulatoryHours(key)
	if err != nil {
		return 0, err
	}
	if v.IsComposite() {
		return 0, fmt.Errorf("%w: regulatory hours %s is composite", ErrMissingRate, key)
	}
	return v.Hours, nil
}

// RegulatoryPart looks up one part of a composite entry.
func (t *Table) RegulatoryPart(key, part string) (int, error) {
	v, err := t.RegulatoryHours(key)
	if err != nil {
		return 0, err
	}
	hours, ok := v.Parts[part]
	if !ok {
		return 0, fmt.Errorf("%w: regulatory hours %s.%s", ErrMissingRate, key, part)
	}
	return hours, nil
}

func contains(regions []model.Region, region model.Region) bool {
	for _, r := range regions {
		if r == region {
			return true
		}
	}
	return false
}

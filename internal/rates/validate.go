package rates

import (
	"fmt"

	"github.com/cromos/ballpark/internal/model"
)

// Keys the calculators read on every run. A card without them is rejected on load
// instead of failing the first request that reaches the formula.
var requiredGlobals = []string{
	"site_multiplier_contacted",
	"site_multiplier_cdas",
	"site_multiplier_questionnaires",
	"qualification_onsite_pct",
	"qualification_remote_pct",
	"initiation_onsite_pct",
	"initiation_remote_pct",
	"closeout_onsite_pct",
	"closeout_remote_pct",
	"eu_legal_rep_setup",
	"eu_legal_rep_annual",
	"eu_part1_dossier",
	"vendors_setup",
	"vendors_setup_units",
	"team_setup",
	"tmf_maintenance_global",
	"tracking_reporting",
	"budget_invoicing",
	"questionnaire_development",
	"external_kickoff",
	"investigator_meeting_global",
	"extra_pm_meeting_hours",
	"client_call_weekly_hours",
	"extra_pm_weekly_hours",
	"vendor_management_monthly_hours",
	"team_training_global_hours",
	"pm_plan_base_hours",
	"pm_plan_hours_per_vendor",
	"tmf_plan_hours",
	"monitoring_plan_hours",
	"unblinded_monitoring_plan_hours",
	"risk_plan_hours",
	"deviation_plan_hours",
	"quality_plan_hours",
	"plan_update_share",
	"retraining_share",
	"protocol_checklist",
	"tmf_audit_initial",
	"tmf_audit_unblinded_initial",
	"tmf_audit_annual",
	"tmf_audit_unblinded_annual",
	"contract_template_hours",
	"contract_negotiation_hours",
	"central_irb_fee",
}

var requiredRegulatory = []string{
	"country_dossier",
	"initial_ec_submission",
	"major_ra_submission",
	"minor_ra_submission",
	"major_ec_submission",
	"minor_ec_submission",
	"expedited_safety_ra",
	"periodic_safety_ra",
	"eu_ctis_major",
}

// Validate checks the structure of the card: region groups match the supported
// regions, and every region carries the rates, visit templates and startup
// months the calculators require.
func (t *Table) Validate() error {
	if err := t.validateRegions(); err != nil {
		return err
	}

	for _, region := range t.doc.Regions.All {
		for _, role := range allRoles {
			if _, err := t.HourlyRate(role, region); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTable, err)
			}
		}
		for _, kind := range allVisitKinds {
			if _, err := t.VisitHours(kind, region); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTable, err)
			}
		}
		months, err := t.StartupMonths(region)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		if months < 0 {
			return fmt.Errorf("%w: negative startup months for %s", ErrInvalidTable, region)
		}
	}

	for _, key := range requiredGlobals {
		if _, err := t.Global(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	}
	for _, key := range requiredRegulatory {
		if _, err := t.RegulatoryHours(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	}
	for _, part := range []string{"ra_hours", "cra_hours", "ra_followup_hours"} {
		if _, err := t.RegulatoryPart("major_ra_submission", part); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	}
	return nil
}

func (t *Table) validateRegions() error {
	groups := t.doc.Regions
	if len(groups.All) == 0 {
		return fmt.Errorf("%w: regions.all is empty", ErrInvalidTable)
	}

	seen := make(map[model.Region]string, len(groups.All))
	check := func(name string, members []model.Region, belongs func(model.Region) bool) error {
		for _, r := range members {
			if !r.Valid() {
				return fmt.Errorf("%w: unsupported region %q in regions.%s", ErrInvalidTable, r, name)
			}
			if other, dup := seen[r]; dup {
				return fmt.Errorf("%w: region %s is in both regions.%s and regions.%s", ErrInvalidTable, r, other, name)
			}
			if !belongs(r) {
				return fmt.Errorf("%w: region %s does not belong to regions.%s", ErrInvalidTable, r, name)
			}
			if !contains(groups.All, r) {
				return fmt.Errorf("%w: region %s is missing from regions.all", ErrInvalidTable, r)
			}
			seen[r] = name
		}
		return nil
	}

	if err := check("eu", groups.EU, model.Region.IsEU); err != nil {
		return err
	}
	if err := check("non_eu", groups.NonEU, model.Region.IsNonEU); err != nil {
		return err
	}
	if err := check("us", groups.US, model.Region.IsUS); err != nil {
		return err
	}

	for _, r := range groups.All {
		if _, ok := seen[r]; !ok {
			return fmt.Errorf("%w: region %s is in no region group", ErrInvalidTable, r)
		}
	}
	return nil
}

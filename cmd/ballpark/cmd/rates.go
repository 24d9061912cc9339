package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cromos/ballpark/internal/model"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the rate card version and regions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRates()
		if err != nil {
			return fmt.Errorf("failed to load rate card: %w", err)
		}

		groups := table.Regions()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "rate card %s (%s)\n", table.Version(), table.Currency())
		fmt.Fprintf(out, "  eu:     %s\n", joinRegions(groups.EU))
		fmt.Fprintf(out, "  non_eu: %s\n", joinRegions(groups.NonEU))
		fmt.Fprintf(out, "  us:     %s\n", joinRegions(groups.US))
		return nil
	},
}

func joinRegions(regions []model.Region) string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

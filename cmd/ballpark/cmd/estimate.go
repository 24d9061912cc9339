package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cromos/ballpark/internal/calculator"
	"github.com/cromos/ballpark/internal/excel"
	"github.com/cromos/ballpark/internal/pdf"
	"github.com/cromos/ballpark/internal/service"
)

var (
	outputFormat string
	outputFile   string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <request.json>",
	Short: "Price a project request",
	Long: `Read a calculation request (the same JSON the HTTP API accepts) and
print the estimate, or write it as an xlsx workbook or pdf summary.

Use "-" to read the request from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, xlsx, pdf)")
	estimateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default is stdout for json, the generated name otherwise)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	req, err := readRequest(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	table, err := loadRates()
	if err != nil {
		return fmt.Errorf("failed to load rate card: %w", err)
	}

	svc, err := service.NewEstimateService(calculator.New(table), excel.NewGenerator(), pdf.NewGenerator(), 0, newLogger())
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch outputFormat {
	case "json":
		estimate, err := svc.Calculate(ctx, req)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(estimate)
	case "xlsx", "pdf":
		export := svc.ExportXLSX
		if outputFormat == "pdf" {
			export = svc.ExportPDF
		}
		result, err := export(ctx, req)
		if err != nil {
			return err
		}
		path := outputFile
		if path == "" {
			path = result.FileName
		}
		if err := os.WriteFile(path, result.Content, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (json, xlsx, pdf)", outputFormat)
	}
}

func readRequest(stdin io.Reader, path string) (service.EstimateRequest, error) {
	var req service.EstimateRequest

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("failed to read request: %w", err)
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	return req, nil
}

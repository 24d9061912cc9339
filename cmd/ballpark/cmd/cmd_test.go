package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const request = `{"countries":{"US":{"sites":5,"patients":15,"monitoring_onsite":4,"monitoring_remote":12}}}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	outputFormat, outputFile, ratesFile = "json", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEstimate_JSONFromStdin(t *testing.T) {
	out, err := run(t, request, "estimate", "-")
	require.NoError(t, err)

	var body struct {
		Totals map[string]float64 `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Greater(t, body.Totals["grand_total"], 0.0)
}

func TestEstimate_XLSXFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(in, []byte(request), 0o644))
	target := filepath.Join(dir, "budget.xlsx")

	_, err := run(t, "", "estimate", "--format", "xlsx", "--output", target, in)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("PK")))
}

func TestEstimate_Errors(t *testing.T) {
	_, err := run(t, request, "estimate", "--format", "csv", "-")
	assert.Error(t, err)

	_, err = run(t, `{"countries":`, "estimate", "-")
	assert.Error(t, err)

	_, err = run(t, "", "estimate", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRates(t *testing.T) {
	out, err := run(t, "", "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "rate card 1.0.0 (USD)")
	assert.Contains(t, out, "EU_CEE")
}

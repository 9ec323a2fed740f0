package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterFunc(t *testing.T) {
	var received *Report
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			received = report
			return []byte("test output"), nil
		},
	}

	report := &Report{ShopperName: "x"}
	out, err := formatter.Format(report)

	assert.NoError(t, err)
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Same(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out)
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"CONSOLE", "console"},
		{" text ", "console"},
		{"json", "json"},
		{"csv", "csv"},
		{"matches", "csv"},
		{"htm", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestAvailableFormats(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormats())
	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "text")
	assert.Contains(t, aliases, "htm")
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	report := &Report{GeneratedAt: reportTime}

	formatter := FormatterFunc{
		ID: "json",
		F:  func(*Report) ([]byte, error) { return []byte("{}"), nil },
	}
	filename, err := WriteFormatted(formatter, report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "drivefit_report_20240601_093000.json"), filename)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))

	failing := FormatterFunc{
		ID: "broken",
		F:  func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}
	filename, err = WriteFormatted(failing, report, dir)
	assert.Empty(t, filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	for _, want := range []string{
		"VEHICLE AFFORDABILITY REPORT: Jordan",
		"Annual Income:        $75,000",
		"Credit Score:         720 (Excellent, 4.5% APR)",
		"Recommended Limit:    $37,500",
		"TOP PICK: 2024 Camry Hybrid SE",
		"Monthly Payment:",
		"RANKED MATCHES",
		"2024 Camry Hybrid SE",
		"97%",
		"VALUE RETENTION FORECAST",
		"Year 3:  63%  (53% - 69%)",
		"KEY ASSUMPTIONS:",
	} {
		assert.Contains(t, content, want)
	}
}

func TestConsoleFormatter_EmptyReport(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&Report{Profile: testShopper().Financial})
	require.NoError(t, err)
	assert.Contains(t, string(out), "VEHICLE AFFORDABILITY REPORT\n")
	assert.Contains(t, string(out), "No vehicles matched.")
	assert.NotContains(t, string(out), "TOP PICK")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, []string{"1", "camry-hybrid-se", "2024 Camry Hybrid SE", "Sedan", "31900", "97", "654.69", "987.00", "17", "95", "98", "90"}, rows[1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Jordan", decoded.ShopperName)
	assert.Len(t, decoded.Matches, 5)
	require.NotNil(t, decoded.TopPick)
	assert.True(t, decoded.MaxAffordable.Equal(decimal.NewFromInt(37500)))
}

func TestHTMLFormatter(t *testing.T) {
	report := buildTestReport(t)
	report.ShopperName = "<Jordan>"

	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "&lt;Jordan&gt;")
	assert.Contains(t, content, "Generated on: 2024-06-01 09:30:00")
	assert.Contains(t, content, "Top Pick: 2024 Camry Hybrid SE")
	assert.Contains(t, content, "<td>97%</td>")
	assert.Contains(t, content, "$37,500")
	assert.Contains(t, content, "<td>63%</td>")
}

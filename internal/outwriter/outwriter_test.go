package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

func sampleConfig() *contract.Config {
	return &contract.Config{
		PrecisionDigits: 50,
		Workers:         4,
		Width:           120,
	}
}

func sampleBatch() *schema.BatchResult {
	return &schema.BatchResult{
		Ranked: []schema.EvaluationResult{
			{
				Index: 1,
				Request: schema.EvaluationRequest{
					Expression:  "355/113",
					TargetValue: "3.14159265358979",
					TargetName:  "pi",
				},
				Computed: "3.1415929203539823008849557522123893805309734513274",
				Quality: schema.QualityMetrics{
					AbsoluteError:  "2.66764189404967331834e-07",
					RelativeError:  "8.49136787673056887871e-08",
					Complexity:     11,
					EleganceScore:  "3.54796571908206451339e-07",
					AccuracyDigits: 6,
					OverallScore:   312389.4,
				},
			},
			{
				Index: 0,
				Request: schema.EvaluationRequest{
					Expression:  "22/7",
					TargetValue: "3.14159265358979",
					TargetName:  "pi",
				},
				Computed: "3.1428571428571428571428571428571428571428571428571",
				Quality: schema.QualityMetrics{
					AbsoluteError:  "1.26448926734961871480e-03",
					RelativeError:  "4.02499434770648846605e-04",
					Complexity:     8,
					EleganceScore:  "1.56796669151390720635e-03",
					AccuracyDigits: 2,
					OverallScore:   87.87,
				},
			},
		},
		Errors: []schema.ItemError{
			{
				Index:      2,
				Expression: "1/0",
				Kind:       schema.DivisionByZeroError,
				Message:    "division by zero",
			},
		},
		Summary: schema.BatchSummary{Total: 3, Successful: 2, Failed: 1, BestScore: 312389.4},
	}
}

func TestShortDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "long mantissa", input: "1.26448926734961871480e-03", expected: "1.2644e-03"},
		{name: "short mantissa", input: "1.2e-03", expected: "1.2e-03"},
		{name: "no exponent", input: "0", expected: "0"},
		{name: "plain decimal", input: "3.14159", expected: "3.14159"},
		{name: "uppercase exponent", input: "2.66764189E-07", expected: "2.6676E-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortDecimal(tt.input))
		})
	}
}

func TestGetMaxTableExprWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{name: "wide terminal caps at sixty", width: 200, expected: 60},
		{name: "medium terminal", width: 100, expected: 32},
		{name: "narrow terminal floors at twelve", width: 40, expected: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			cfg.Width = tt.width
			assert.Equal(t, tt.expected, GetMaxTableExprWidth(cfg))
		})
	}
}

func TestWriteBatchTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	err := writeBatchTable(sampleBatch(), sampleConfig(), 125*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "355/113")
	assert.Contains(t, out, "1.2644e-03")
	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "[2] 1/0 (division_by_zero): division by zero")
	assert.Contains(t, out, "Showing top 2 of 3 results (1 failed")
	assert.Contains(t, out, "with 4 workers at 50-digit precision")
}

func TestWriteBatchCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVResultsForBatch(&buf, sampleBatch(), sampleConfig())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, "label", records[0][11])

	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "355/113", records[1][1])
	assert.Equal(t, "Fair", records[1][11])

	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "22/7", records[2][1])
	assert.Equal(t, "Poor", records[2][11])
}

func TestWriteBatchJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSONResultsForBatch(&buf, sampleBatch(), sampleConfig())
	require.NoError(t, err)

	var decoded struct {
		Ranked []struct {
			Rank    int                   `json:"rank"`
			Label   string                `json:"label"`
			Index   int                   `json:"index"`
			Quality schema.QualityMetrics `json:"quality"`
		} `json:"ranked"`
		Errors  []schema.ItemError  `json:"errors"`
		Summary schema.BatchSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Ranked, 2)
	assert.Equal(t, 1, decoded.Ranked[0].Rank)
	assert.Equal(t, "Fair", decoded.Ranked[0].Label)
	assert.Equal(t, 1, decoded.Ranked[0].Index)
	assert.Equal(t, 6, decoded.Ranked[0].Quality.AccuracyDigits)

	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, 3, decoded.Summary.Total)
}

func TestWriteBatchParquetRequiresFile(t *testing.T) {
	cfg := sampleConfig()
	cfg.OutputFile = ""
	err := writeBatchParquetResults(sampleBatch(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestWriteSingleCard(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	res := &sampleBatch().Ranked[0]
	cfg := sampleConfig()

	// Route through a temp file to avoid stdout capture
	cfg.OutputFile = filepath.Join(t.TempDir(), "card.txt")
	require.NoError(t, writeSingleCard(res, cfg, 10*time.Millisecond))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	data := string(raw)

	assert.Contains(t, data, "Expression:     355/113")
	assert.Contains(t, data, "Target:         3.14159265358979 (pi)")
	assert.Contains(t, data, "Accuracy:       6 digits (Fair)")
	assert.Contains(t, data, "at 50-digit precision")
}

func TestWriteCritique(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCritique(&buf, &schema.Critique{
		Accuracy:       "six correct digits",
		Recommendation: "keep it",
	}))
	out := buf.String()
	assert.Contains(t, out, "accuracy:")
	assert.Contains(t, out, "recommendation: keep it")
	assert.NotContains(t, out, "novelty")

	buf.Reset()
	require.NoError(t, writeCritique(&buf, &schema.Critique{Unavailable: true}))
	assert.Contains(t, buf.String(), "unavailable")
}

package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConstantsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConstantsCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(records), 1)

	assert.Equal(t, []string{"name", "value", "aliases", "description"}, records[0])

	names := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		names[rec[0]] = rec[1]
	}
	require.Contains(t, names, "pi")
	assert.Contains(t, names["pi"], "3.14159265358979323846")
}

func TestWriteConstantsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := sampleConfig()
	require.NoError(t, writeConstantsTable(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "pi")
	assert.Contains(t, out, "golden")
	assert.Contains(t, out, "Euler-Mascheroni constant")
}

func TestDisplayValue(t *testing.T) {
	full := "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

	// 50 digits of display plus the leading digit and the dot
	assert.Len(t, displayValue(full, 50), 52)
	assert.Equal(t, "3.14159", displayValue(full, 5))

	// Short values pass through
	assert.Equal(t, "2.5", displayValue("2.5", 50))
}

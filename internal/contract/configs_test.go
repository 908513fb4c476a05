package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarkw/constfit/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		PrecisionDigits: 50,
		GuardDigits:     10,
		EleganceWeight:  0.03,
		ScoreEpsilon:    1e-50,
		Workers:         4,
		ResultLimit:     25,
		Output:          "text",
		Color:           "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, 50, cfg.PrecisionDigits)
	assert.Equal(t, 10, cfg.GuardDigits)
	assert.Equal(t, 0.03, cfg.EleganceWeight)
	assert.Equal(t, 25, cfg.ResultLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.GuardDigits = 0
	input.ScoreEpsilon = 0
	input.Workers = 0
	input.CritiqueModel = ""
	input.ServeAddr = ""
	input.ArchiveBackend = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, DefaultGuardDigits, cfg.GuardDigits)
	assert.Equal(t, DefaultScoreEpsilon, cfg.ScoreEpsilon)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultCritiqueModel, cfg.CritiqueModel)
	assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
	assert.Equal(t, schema.NoneBackend, cfg.ArchiveBackend)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{
			name:   "precision too low",
			mutate: func(in *ConfigRawInput) { in.PrecisionDigits = 5 },
		},
		{
			name:   "precision too high",
			mutate: func(in *ConfigRawInput) { in.PrecisionDigits = 95 },
		},
		{
			name: "precision plus guard exceeds table width",
			mutate: func(in *ConfigRawInput) {
				in.PrecisionDigits = 90
				in.GuardDigits = 20
			},
		},
		{
			name:   "negative elegance weight",
			mutate: func(in *ConfigRawInput) { in.EleganceWeight = -1 },
		},
		{
			name:   "limit too low",
			mutate: func(in *ConfigRawInput) { in.ResultLimit = 0 },
		},
		{
			name:   "limit too high",
			mutate: func(in *ConfigRawInput) { in.ResultLimit = MaxResultLimit + 1 },
		},
		{
			name:   "bad output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "yaml" },
		},
		{
			name:   "unparseable timeout",
			mutate: func(in *ConfigRawInput) { in.TimeoutStr = "soon" },
		},
		{
			name:   "negative timeout",
			mutate: func(in *ConfigRawInput) { in.TimeoutStr = "-5s" },
		},
		{
			name:   "bad archive backend",
			mutate: func(in *ConfigRawInput) { in.ArchiveBackend = "oracle" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestProcessAndValidateTimeout(t *testing.T) {
	input := validInput()
	input.TimeoutStr = "2m30s"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 2*time.Minute+30*time.Second, cfg.Timeout)
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo("yes"))
	assert.True(t, parseYesNo("true"))
	assert.True(t, parseYesNo("1"))
	assert.True(t, parseYesNo(""))
	assert.False(t, parseYesNo("no"))
	assert.False(t, parseYesNo("false"))
}

func TestMantissaBits(t *testing.T) {
	cfg := &Config{PrecisionDigits: 50, GuardDigits: 10}

	// 60 decimal digits need ceil(60*log2(10)) = 200 bits, plus headroom
	assert.Equal(t, uint(204), cfg.MantissaBits())

	// More digits means strictly more bits
	wider := &Config{PrecisionDigits: 90, GuardDigits: 10}
	assert.Greater(t, wider.MantissaBits(), cfg.MantissaBits())
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		PrecisionDigits: 50,
		Constants:       map[string]string{"tau": "6.28"},
	}

	clone := cfg.Clone()
	clone.PrecisionDigits = 20
	clone.Constants["tau"] = "changed"

	assert.Equal(t, 50, cfg.PrecisionDigits)
	assert.Equal(t, "6.28", cfg.Constants["tau"])
}

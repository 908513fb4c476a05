package critic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarkw/constfit/schema"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient("gpt-4o-mini")
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "test-key")
	client, err := NewClient("")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestBuildPrompt(t *testing.T) {
	res := &schema.EvaluationResult{
		Request: schema.EvaluationRequest{
			Expression:  "355/113",
			TargetValue: "3.14159265358979",
			TargetName:  "pi",
		},
		Computed: "3.14159292035398",
		Quality: schema.QualityMetrics{
			AbsoluteError:  "2.66e-07",
			AccuracyDigits: 6,
			Complexity:     11,
		},
	}

	prompt := buildPrompt(res)
	assert.Contains(t, prompt, "Expression: 355/113")
	assert.Contains(t, prompt, "Target constant: pi")
	assert.Contains(t, prompt, "Correct digits: 6")
	assert.Contains(t, prompt, "Complexity: 11")
}

func TestBuildPromptUnknownTarget(t *testing.T) {
	res := &schema.EvaluationResult{
		Request: schema.EvaluationRequest{
			Expression:  "22/7",
			TargetValue: "3.14",
			TargetName:  "unknown",
		},
	}
	assert.NotContains(t, buildPrompt(res), "Target constant:")
}

func TestParseCritique(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr bool
	}{
		{
			name:  "bare json",
			reply: `{"accuracy": "six digits", "recommendation": "keep"}`,
		},
		{
			name: "fenced json",
			reply: "Here is my review:\n```json\n" +
				`{"accuracy": "six digits", "recommendation": "keep"}` +
				"\n```\nHope that helps.",
		},
		{
			name:    "no json at all",
			reply:   "I cannot review this expression.",
			wantErr: true,
		},
		{
			name:    "json missing expected fields",
			reply:   `{"novelty": "none"}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			reply:   `{"accuracy": `,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			critique, err := parseCritique(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "six digits", critique.Accuracy)
			assert.Equal(t, "keep", critique.Recommendation)
			assert.False(t, critique.Unavailable)
		})
	}
}

// Package critic produces qualitative commentary for ranked results via an
// external language model. Critiques are presentation-only annotations and
// never influence scores or ranking.
package critic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

const systemPrompt = "You are a numerical analyst reviewing candidate " +
	"mathematical expressions that approximate known constants. Reply with " +
	"a single JSON object containing the string fields accuracy, efficiency, " +
	"novelty, stability, generality and recommendation. Keep each field to " +
	"one or two sentences."

// Client implements the Critic interface on top of the OpenAI chat API.
type Client struct {
	client *openai.Client
	model  string
}

var _ contract.Critic = &Client{} // Compile-time check

// NewClient builds a critic client from OPENAI_API_KEY. A missing key is an
// error so callers can decide whether to proceed without critiques.
func NewClient(model string) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = contract.DefaultCritiqueModel
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Critique asks the model to review one ranked result. Failures of any kind
// degrade to a Critique marked Unavailable.
func (c *Client) Critique(ctx context.Context, res *schema.EvaluationResult) *schema.Critique {
	prompt := buildPrompt(res)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		contract.LogWarn("Critique request failed", err)
		return &schema.Critique{Unavailable: true}
	}
	if len(resp.Choices) == 0 {
		return &schema.Critique{Unavailable: true}
	}

	critique, err := parseCritique(resp.Choices[0].Message.Content)
	if err != nil {
		contract.LogWarn("Critique reply unparseable", err)
		return &schema.Critique{Unavailable: true}
	}
	return critique
}

// buildPrompt describes one result with its quality metrics.
func buildPrompt(res *schema.EvaluationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expression: %s\n", res.Request.Expression)
	if res.Request.TargetName != "" && res.Request.TargetName != "unknown" {
		fmt.Fprintf(&b, "Target constant: %s\n", res.Request.TargetName)
	}
	fmt.Fprintf(&b, "Target value: %s\n", res.Request.TargetValue)
	fmt.Fprintf(&b, "Computed value: %s\n", res.Computed)
	fmt.Fprintf(&b, "Absolute error: %s\n", res.Quality.AbsoluteError)
	fmt.Fprintf(&b, "Correct digits: %d\n", res.Quality.AccuracyDigits)
	fmt.Fprintf(&b, "Complexity: %d\n", res.Quality.Complexity)
	return b.String()
}

// parseCritique extracts the first JSON object from the reply. Models often
// wrap JSON in prose or code fences.
func parseCritique(reply string) (*schema.Critique, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var critique schema.Critique
	if err := json.Unmarshal([]byte(reply[start:end+1]), &critique); err != nil {
		return nil, fmt.Errorf("invalid critique JSON: %w", err)
	}
	if critique.Recommendation == "" && critique.Accuracy == "" {
		return nil, fmt.Errorf("critique JSON missing expected fields")
	}
	return &critique, nil
}

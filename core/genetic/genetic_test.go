package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarkw/constfit/core/eval"
	"github.com/quarkw/constfit/schema"
)

func TestRandomExpressionFillsTemplates(t *testing.T) {
	engine := NewEngine(7)
	evaluator := eval.NewEvaluator(200, nil)

	// Placeholder coefficients are always positive, so every template
	// instantiation evaluates cleanly.
	for range 100 {
		expr := engine.RandomExpression()
		require.NotEmpty(t, expr)
		assert.NotContains(t, expr, "{")
		_, err := evaluator.Evaluate(expr)
		require.NoError(t, err, "expression %q", expr)
	}
}

func TestRandomExpressionDeterministic(t *testing.T) {
	a := NewEngine(42)
	b := NewEngine(42)
	for range 50 {
		assert.Equal(t, a.RandomExpression(), b.RandomExpression())
	}
}

func TestSwapOperators(t *testing.T) {
	assert.Equal(t, "pi - 1/(3 - 1/7)", swapAddSub("pi + 1/(3 + 1/7)"))
	assert.Equal(t, "pi + 3", swapAddSub("pi - 3"))
	assert.Equal(t, "22*7", swapMulDiv("22/7"))
	assert.Equal(t, "2/pi", swapMulDiv("2*pi"))
}

func TestSwapConstantsWholeWord(t *testing.T) {
	// Function names like exp survive the constant swap
	assert.Equal(t, "exp(e)", swapConstants("exp(pi)"))
	assert.Equal(t, "2 * pi", swapConstants("2 * e"))
	assert.Equal(t, "pi^2", swapConstants("phi^2"))
}

func TestJitterIntegers(t *testing.T) {
	engine := NewEngine(1)
	out := engine.jitterIntegers("22/7")
	assert.Regexp(t, `^\d+/\d+$`, out)

	// Non-numeric tokens are untouched
	assert.Equal(t, "pi", engine.jitterIntegers("pi"))
}

func TestMutateProducesCandidates(t *testing.T) {
	engine := NewEngine(3)
	for range 50 {
		assert.NotEmpty(t, engine.Mutate("pi + 1/7"))
	}
}

func TestCrossoverCombinesParents(t *testing.T) {
	engine := NewEngine(11)
	for range 20 {
		child := engine.Crossover("22/7", "355/113")
		assert.Contains(t, child, "22/7")
		assert.Contains(t, child, "355/113")
	}
}

func TestPopulationSize(t *testing.T) {
	engine := NewEngine(5)

	// Empty pool: everything is random
	exprs := engine.Population(nil, 30)
	assert.Len(t, exprs, 30)

	pool := []schema.EvaluationResult{
		{Request: schema.EvaluationRequest{Expression: "22/7"}},
		{Request: schema.EvaluationRequest{Expression: "355/113"}},
	}
	exprs = engine.Population(pool, 30)
	assert.Len(t, exprs, 30)
}

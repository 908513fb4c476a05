package eval

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarkw/constfit/schema"
)

const testPrec = 200 // bits, roughly 60 decimal digits

// TestEvaluateBasics covers arithmetic, precedence and associativity.
func TestEvaluateBasics(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string // prefix of the decimal expansion
	}{
		{
			name:     "integer addition",
			expr:     "1+2",
			expected: "3",
		},
		{
			name:     "multiplication binds tighter than addition",
			expr:     "2+3*4",
			expected: "14",
		},
		{
			name:     "parentheses override precedence",
			expr:     "(2+3)*4",
			expected: "20",
		},
		{
			name:     "power binds tighter than unary minus",
			expr:     "-2^2",
			expected: "-4",
		},
		{
			name:     "power is right-associative",
			expr:     "2^3^2",
			expected: "512",
		},
		{
			name:     "rational pi approximation",
			expr:     "355/113",
			expected: "3.14159292",
		},
		{
			name:     "whitespace is ignored",
			expr:     " 1 + 2 * 3 ",
			expected: "7",
		},
		{
			name:     "decimal literal",
			expr:     "0.5*4",
			expected: "2",
		},
	}

	ev := NewEvaluator(testPrec, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Evaluate(tt.expr)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got.Text('g', 30), tt.expected),
				"got %s, want prefix %s", got.Text('g', 30), tt.expected)
		})
	}
}

// TestEvaluateConstants checks built-in constant resolution at precision.
func TestEvaluateConstants(t *testing.T) {
	ev := NewEvaluator(testPrec, nil)

	got, err := ev.Evaluate("pi")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Text('g', 50),
		"3.141592653589793238462643383279502884197169399375"),
		"pi expansion mismatch: %s", got.Text('g', 50))

	// Symbol resolution is case-insensitive
	upper, err := ev.Evaluate("PI")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(upper))

	// Aliases resolve to the same table entry
	sym, err := ev.Evaluate("π")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(sym))
}

// TestEvaluateFunctions checks function evaluation and case-insensitivity.
func TestEvaluateFunctions(t *testing.T) {
	ev := NewEvaluator(testPrec, nil)

	got, err := ev.Evaluate("sqrt(2)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Text('g', 30), "1.4142135623730950488"),
		"sqrt(2) mismatch: %s", got.Text('g', 30))

	upper, err := ev.Evaluate("SQRT(2)")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(upper))

	// log is base 10, ln is natural
	ten, err := ev.Evaluate("log(100)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ten.Text('g', 10), "2"), "log(100) = %s", ten.Text('g', 10))

	e, err := ev.Evaluate("ln(exp(1))")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.Text('g', 10), "1"), "ln(e) = %s", e.Text('g', 10))
}

// TestEvaluateDeterminism re-evaluates the same expression and expects
// identical digits.
func TestEvaluateDeterminism(t *testing.T) {
	ev := NewEvaluator(testPrec, nil)
	first, err := ev.Evaluate("exp(pi*sqrt(163))")
	require.NoError(t, err)
	for range 3 {
		again, err := ev.Evaluate("exp(pi*sqrt(163))")
		require.NoError(t, err)
		assert.Equal(t, first.Text('e', 50), again.Text('e', 50))
	}
}

// TestEvaluateOverrides checks the custom-constant shadowing order.
func TestEvaluateOverrides(t *testing.T) {
	ev := NewEvaluator(testPrec, map[string]string{
		"mine": "42",
		"PI":   "3", // shadows the built-in, stored lowercase
	})

	got, err := ev.Evaluate("mine/2")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(big.NewFloat(21)))

	shadowed, err := ev.Evaluate("pi")
	require.NoError(t, err)
	assert.Equal(t, 0, shadowed.Cmp(big.NewFloat(3)))
}

// TestEvaluateErrors checks the error taxonomy for bad inputs.
func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind schema.ErrorKind
	}{
		{
			name: "empty expression",
			expr: "",
			kind: schema.ParseError,
		},
		{
			name: "dangling operator",
			expr: "1+",
			kind: schema.ParseError,
		},
		{
			name: "unbalanced parenthesis",
			expr: "(1+2",
			kind: schema.ParseError,
		},
		{
			name: "double decimal point",
			expr: "1..5",
			kind: schema.ParseError,
		},
		{
			name: "unknown identifier",
			expr: "alphabet",
			kind: schema.UnknownSymbolError,
		},
		{
			name: "unknown function",
			expr: "frob(2)",
			kind: schema.UnknownSymbolError,
		},
		{
			name: "function used without argument",
			expr: "sqrt",
			kind: schema.UnknownSymbolError,
		},
		{
			name: "division by zero",
			expr: "1/0",
			kind: schema.DivisionByZeroError,
		},
		{
			name: "division by zero subexpression",
			expr: "1/(2-2)",
			kind: schema.DivisionByZeroError,
		},
		{
			name: "log of zero",
			expr: "log(0)",
			kind: schema.DomainError,
		},
		{
			name: "ln of negative",
			expr: "ln(0-5)",
			kind: schema.DomainError,
		},
		{
			name: "sqrt of negative",
			expr: "sqrt(0-1)",
			kind: schema.DomainError,
		},
		{
			name: "asin out of domain",
			expr: "asin(2)",
			kind: schema.DomainError,
		},
		{
			name: "zero to negative power",
			expr: "0^(0-1)",
			kind: schema.DivisionByZeroError,
		},
		{
			name: "overflowing exponential",
			expr: "exp(10^100)",
			kind: schema.DomainError,
		},
	}

	ev := NewEvaluator(testPrec, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(tt.expr)
			require.Error(t, err)
			assert.Equal(t, tt.kind, schema.KindOf(err), "error was: %v", err)
		})
	}
}

// TestFunctionNames sanity-checks the exported function table.
func TestFunctionNames(t *testing.T) {
	names := FunctionNames()
	assert.Contains(t, names, "sqrt")
	assert.Contains(t, names, "log")
	assert.Contains(t, names, "ln")
	assert.Contains(t, names, "tanh")
	assert.True(t, IsFunction("sin"))
	assert.False(t, IsFunction("pi"))
}

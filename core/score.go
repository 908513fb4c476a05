package core

import (
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/core/eval"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// operatorChars are the characters counted as operators by the complexity
// metric. Parentheses count, per the observed behavior.
const operatorChars = "+-*/^()"

var (
	functionPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(eval.FunctionNames(), "|") + `)\b`)
	constantPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(constantWords(), "|") + `)\b`)
	numberPattern   = regexp.MustCompile(`\d+(\.\d+)?`)
)

// constantWords collects built-in constant names plus their ASCII aliases
// for the word-boundary pattern. unicodeAliases holds the non-ASCII
// spellings (π, φ, ...) that \b cannot delimit; those are counted by plain
// substring search instead.
func constantWords() []string {
	var words []string
	for _, c := range constants.All() {
		words = append(words, c.Name)
		for _, a := range c.Aliases {
			if len(a) == len([]rune(a)) {
				words = append(words, a)
			}
		}
	}
	return words
}

var unicodeAliases = func() []string {
	var aliases []string
	for _, c := range constants.All() {
		for _, a := range c.Aliases {
			if len(a) != len([]rune(a)) {
				aliases = append(aliases, a)
			}
		}
	}
	return aliases
}()

// Complexity computes the textual complexity proxy for an expression:
//
//	len(expr) + 2*operators + 3*functions + constants + numericLiterals
//
// It is deliberately a cheap, deterministic string metric, not a parse-tree
// measure, and is therefore sensitive to whitespace and formatting.
// overrideNames are caller-provided constant names counted alongside the
// built-in table.
func Complexity(expr string, overrideNames []string) int {
	operators := 0
	for _, r := range expr {
		if strings.ContainsRune(operatorChars, r) {
			operators++
		}
	}

	funcCount := len(functionPattern.FindAllString(expr, -1))

	constCount := len(constantPattern.FindAllString(expr, -1))
	for _, alias := range unicodeAliases {
		constCount += strings.Count(expr, alias)
	}
	for _, name := range overrideNames {
		constCount += countWholeWord(expr, name)
	}

	numCount := len(numberPattern.FindAllString(expr, -1))

	return len(expr) + 2*operators + 3*funcCount + constCount + numCount
}

func countWholeWord(expr, name string) int {
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return strings.Count(expr, name)
	}
	return len(pattern.FindAllString(expr, -1))
}

// scoreQuality turns (computed, target, expression) into QualityMetrics.
// A zero target makes the relative error undefined and fails the item with
// a DivisionByZeroError.
func scoreQuality(cfg *contract.Config, expr string, computed, target *big.Float, overrideNames []string) (schema.QualityMetrics, error) {
	prec := computed.Prec()

	absErr := new(big.Float).SetPrec(prec).Sub(computed, target)
	absErr.Abs(absErr)

	if target.Sign() == 0 {
		return schema.QualityMetrics{}, schema.NewEvalError(schema.DivisionByZeroError,
			"relative error for %q is undefined: target value is zero", expr)
	}
	absTarget := new(big.Float).SetPrec(prec).Abs(target)
	relErr := new(big.Float).SetPrec(prec).Quo(absErr, absTarget)

	complexity := Complexity(expr, overrideNames)

	penalty := new(big.Float).SetPrec(prec).SetFloat64(1 + cfg.EleganceWeight*float64(complexity))
	elegance := new(big.Float).SetPrec(prec).Mul(absErr, penalty)

	return schema.QualityMetrics{
		AbsoluteError:  formatDecimal(absErr, cfg.PrecisionDigits),
		RelativeError:  formatDecimal(relErr, cfg.PrecisionDigits),
		Complexity:     complexity,
		EleganceScore:  formatDecimal(elegance, cfg.PrecisionDigits),
		AccuracyDigits: accuracyDigits(absErr, cfg.PrecisionDigits),
		OverallScore:   overallScore(absErr, complexity, cfg.ScoreEpsilon),
	}, nil
}

// accuracyDigits is the number of correct leading decimal digits,
// floor(-log10(absErr)) clamped to [0, limit]; an exact match counts as the
// full precision limit.
func accuracyDigits(absErr *big.Float, limit int) int {
	if absErr.Sign() == 0 {
		return limit
	}
	mant := new(big.Float)
	exp := absErr.MantExp(mant)
	m, _ := mant.Float64()
	log10 := float64(exp)*math.Log10(2) + math.Log10(m)
	digits := int(math.Floor(-log10))
	if digits < 0 {
		return 0
	}
	if digits > limit {
		return limit
	}
	return digits
}

// overallScore is the ranking-only composite: higher is better. The
// epsilon floor keeps exact matches finite and the +1 guards an empty
// expression's zero complexity.
func overallScore(absErr *big.Float, complexity int, epsilon float64) float64 {
	absF, _ := absErr.Float64()
	if absF < 0 {
		absF = 0
	}
	return (1 / (absF + epsilon)) * (1 / float64(complexity+1))
}

// formatDecimal renders an arbitrary-precision value as canonical decimal
// text at the configured number of significant digits, never through
// float64.
func formatDecimal(f *big.Float, digits int) string {
	if f.Sign() == 0 {
		return "0"
	}
	return f.Text('e', digits-1)
}

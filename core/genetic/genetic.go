// Package genetic evolves candidate expressions toward a target constant
// with random templates, mutation and crossover.
package genetic

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quarkw/constfit/schema"
)

// templates are the seed shapes for fresh candidates. Placeholders are
// filled with small integers, short decimals or constant atoms.
var templates = []string{
	// Basic arithmetic around pi
	"pi + {a}",
	"pi - {a}",
	"pi * {a}",
	"pi / {a}",
	"{a} / pi",

	// Exponential forms
	"e^({a})",
	"e^(pi/{a})",
	"e^(pi*{a})",

	// Radicals
	"sqrt({a})",
	"sqrt(pi + {a})",
	"sqrt(pi * {a})",
	"sqrt({a} + sqrt({b}))",

	// Golden ratio combinations
	"phi^{a}",
	"phi + {a}",
	"phi * {a}",

	// Continued fractions
	"{a} + 1/({b} + 1/{c})",
	"pi + 1/({a} + 1/{b})",

	// Nested expressions
	"({a} + {b}) / ({c} + {d})",
	"sqrt({a}) + sqrt({b})",
	"ln({a}) + pi",

	// Ramanujan-style
	"e^(pi * sqrt({a}))",
	"pi^2 / {a}",
	"sqrt(163) + {a}",
}

// atoms are the non-numeric values a placeholder may take.
var atoms = []string{"pi", "e", "phi", "2", "3", "5", "7", "163"}

var placeholders = []string{"{a}", "{b}", "{c}", "{d}"}

var (
	integerPattern = regexp.MustCompile(`\d+`)
	piWordPattern  = regexp.MustCompile(`\bpi\b`)
	eWordPattern   = regexp.MustCompile(`\be\b`)
	phiWordPattern = regexp.MustCompile(`\bphi\b`)
)

// Engine drives one evolution run. All randomness flows through a single
// seeded source so runs are reproducible.
type Engine struct {
	rng *rand.Rand
}

// NewEngine returns an engine seeded for reproducible runs. A zero seed
// picks a time-based one.
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// RandomExpression builds a fresh candidate from a random template.
func (g *Engine) RandomExpression() string {
	expr := templates[g.rng.Intn(len(templates))]
	for _, p := range placeholders {
		for strings.Contains(expr, p) {
			expr = strings.Replace(expr, p, g.coefficient(), 1)
		}
	}
	return expr
}

func (g *Engine) coefficient() string {
	switch g.rng.Intn(4) {
	case 0:
		return strconv.Itoa(g.rng.Intn(20) + 1)
	case 1:
		return strconv.Itoa(g.rng.Intn(200) + 1)
	case 2:
		return strconv.FormatFloat(0.1+g.rng.Float64()*9.9, 'f', 3, 64)
	default:
		return atoms[g.rng.Intn(len(atoms))]
	}
}

// Mutate applies one random edit to an expression: coefficient jitter, an
// operator or constant swap, a wrapping function, or a structural tweak.
// Edits that break the expression are acceptable; the batch driver
// isolates the failure.
func (g *Engine) Mutate(expr string) string {
	switch g.rng.Intn(8) {
	case 0:
		return g.jitterIntegers(expr)
	case 1:
		return swapAddSub(expr)
	case 2:
		return swapMulDiv(expr)
	case 3:
		return "sqrt(" + expr + ")"
	case 4:
		if strings.HasPrefix(expr, "ln") {
			return expr
		}
		return "ln(" + expr + ")"
	case 5:
		if strings.HasPrefix(expr, "exp") {
			return expr
		}
		return "exp(" + expr + ")"
	case 6:
		return swapConstants(expr)
	default:
		forms := []string{"(%s) + 1", "(%s) / 2", "2 * (%s)"}
		return fmt.Sprintf(forms[g.rng.Intn(len(forms))], expr)
	}
}

// jitterIntegers shifts every integer literal by a small random delta,
// never below 1 so divisors stay usable.
func (g *Engine) jitterIntegers(expr string) string {
	return integerPattern.ReplaceAllStringFunc(expr, func(s string) string {
		n, err := strconv.Atoi(s)
		if err != nil {
			return s
		}
		n += g.rng.Intn(11) - 5
		if n < 1 {
			n = 1
		}
		return strconv.Itoa(n)
	})
}

// swapAddSub flips additive operators, preferring + when both appear.
func swapAddSub(expr string) string {
	if strings.Contains(expr, "+") {
		return strings.ReplaceAll(expr, "+", "-")
	}
	return strings.ReplaceAll(expr, "-", "+")
}

func swapMulDiv(expr string) string {
	if strings.Contains(expr, "*") {
		return strings.ReplaceAll(expr, "*", "/")
	}
	return strings.ReplaceAll(expr, "/", "*")
}

// swapConstants exchanges pi and e as whole words, leaving function names
// like exp untouched. phi falls back to pi when neither is present.
func swapConstants(expr string) string {
	if piWordPattern.MatchString(expr) {
		return piWordPattern.ReplaceAllString(expr, "e")
	}
	if eWordPattern.MatchString(expr) {
		return eWordPattern.ReplaceAllString(expr, "pi")
	}
	return phiWordPattern.ReplaceAllString(expr, "pi")
}

// Crossover combines two parent expressions into one child.
func (g *Engine) Crossover(a, b string) string {
	forms := []string{
		"(%s) + (%s)",
		"(%s) - (%s)",
		"(%s) * (%s)",
		"(%s) / (%s)",
		"sqrt((%s) * (%s))",
		"((%s) + (%s)) / 2",
	}
	return fmt.Sprintf(forms[g.rng.Intn(len(forms))], a, b)
}

// Population assembles one generation of candidates: a third fresh random
// expressions for exploration, a third mutations of the best pool members,
// and the rest crossovers between them. With an empty pool everything is
// random.
func (g *Engine) Population(pool []schema.EvaluationResult, size int) []string {
	exprs := make([]string, 0, size)
	third := size / 3

	for range third {
		exprs = append(exprs, g.RandomExpression())
	}

	if len(pool) > 0 {
		parents := pool[:min(10, len(pool))]
		for range third {
			parent := parents[g.rng.Intn(len(parents))]
			exprs = append(exprs, g.Mutate(parent.Request.Expression))
		}
	}

	if len(pool) >= 2 {
		parents := pool[:min(15, len(pool))]
		for len(exprs) < size {
			i := g.rng.Intn(len(parents))
			j := g.rng.Intn(len(parents) - 1)
			if j >= i {
				j++
			}
			exprs = append(exprs, g.Crossover(parents[i].Request.Expression, parents[j].Request.Expression))
		}
	}

	for len(exprs) < size {
		exprs = append(exprs, g.RandomExpression())
	}
	return exprs
}

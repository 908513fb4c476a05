package eval

import (
	"math/big"
	"sort"

	"github.com/quarkw/constfit/core/bigmath"
)

// mathFunc evaluates one supported unary function at the argument's
// precision.
type mathFunc func(x *big.Float) (*big.Float, error)

// functions is the fixed supported-function set. Names are matched
// case-insensitively (the lexer lowercases identifiers). log is base-10 and
// ln is natural, since the set names both.
var functions = map[string]mathFunc{
	"sqrt": bigmath.Sqrt,
	"log":  bigmath.Log10,
	"ln":   bigmath.Log,
	"exp":  bigmath.Exp,
	"sin":  wrap(bigmath.Sin),
	"cos":  wrap(bigmath.Cos),
	"tan":  bigmath.Tan,
	"asin": bigmath.Asin,
	"acos": bigmath.Acos,
	"atan": wrap(bigmath.Atan),
	"sinh": bigmath.Sinh,
	"cosh": bigmath.Cosh,
	"tanh": bigmath.Tanh,
}

func wrap(f func(x *big.Float) *big.Float) mathFunc {
	return func(x *big.Float) (*big.Float, error) {
		return f(x), nil
	}
}

// FunctionNames returns the supported function names, sorted. The scorer
// uses this set for whole-word complexity counting.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsFunction reports whether name (lowercase) is a supported function.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

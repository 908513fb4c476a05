// Package eval implements the expression evaluator: a lexer and
// recursive-descent parser over a closed token set, and an AST walker that
// computes results on *big.Float at a fixed working precision.
package eval

import (
	"errors"
	"math/big"
	"strings"

	"github.com/quarkw/constfit/core/bigmath"
	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/schema"
)

// Evaluator maps expression strings to high-precision decimal values. It is
// immutable after construction and safe for concurrent use.
type Evaluator struct {
	prec      uint
	overrides map[string]string
}

// NewEvaluator returns an evaluator working at prec mantissa bits.
// overrides is an optional caller-provided name->decimal-literal map;
// override names shadow built-in constants and match case-insensitively.
func NewEvaluator(prec uint, overrides map[string]string) *Evaluator {
	ov := make(map[string]string, len(overrides))
	for name, value := range overrides {
		ov[strings.ToLower(name)] = value
	}
	return &Evaluator{prec: prec, overrides: ov}
}

// Prec returns the working precision in mantissa bits.
func (ev *Evaluator) Prec() uint { return ev.prec }

// Evaluate parses and evaluates expr. Failures are typed *schema.EvalError
// values carrying the offending fragment where feasible.
func (ev *Evaluator) Evaluate(expr string) (*big.Float, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, schema.NewEvalError(schema.ParseError, "empty expression")
	}
	root, err := parse(expr)
	if err != nil {
		return nil, err
	}
	result, err := ev.evalNode(root)
	if err != nil {
		return nil, err
	}
	if result.IsInf() {
		return nil, schema.NewEvalError(schema.DomainError, "result of %q is not finite", expr)
	}
	return result, nil
}

func (ev *Evaluator) evalNode(n node) (*big.Float, error) {
	switch n := n.(type) {
	case *numberNode:
		f, ok := new(big.Float).SetPrec(ev.prec).SetString(n.lit)
		if !ok {
			return nil, schema.NewEvalError(schema.ParseError,
				"malformed number %q at position %d", n.lit, n.pos)
		}
		return f, nil

	case *identNode:
		return ev.resolveIdent(n)

	case *callNode:
		return ev.evalCall(n)

	case *unaryNode:
		operand, err := ev.evalNode(n.operand)
		if err != nil {
			return nil, err
		}
		if n.negate {
			return new(big.Float).SetPrec(ev.prec).Neg(operand), nil
		}
		return operand, nil

	case *binaryNode:
		return ev.evalBinary(n)
	}
	return nil, schema.NewEvalError(schema.ParseError, "unsupported expression node")
}

// resolveIdent looks up a bare identifier: caller overrides first, then the
// built-in constant table.
func (ev *Evaluator) resolveIdent(n *identNode) (*big.Float, error) {
	lit, ok := ev.overrides[n.name]
	if !ok {
		lit, ok = constants.Lookup(n.name)
	}
	if !ok {
		if IsFunction(n.name) {
			return nil, schema.NewEvalError(schema.UnknownSymbolError,
				"function %q requires an argument at position %d", n.name, n.pos)
		}
		return nil, schema.NewEvalError(schema.UnknownSymbolError,
			"unknown constant or identifier %q at position %d", n.name, n.pos)
	}
	f, ok := new(big.Float).SetPrec(ev.prec).SetString(lit)
	if !ok {
		return nil, schema.NewEvalError(schema.ParseError,
			"invalid value for constant %q", n.name)
	}
	return f, nil
}

func (ev *Evaluator) evalCall(n *callNode) (*big.Float, error) {
	fn, ok := functions[n.fn]
	if !ok {
		return nil, schema.NewEvalError(schema.UnknownSymbolError,
			"unknown function %q at position %d", n.fn, n.pos)
	}
	arg, err := ev.evalNode(n.arg)
	if err != nil {
		return nil, err
	}
	result, err := fn(arg)
	if err != nil {
		return nil, mapMathError(err, n.fn)
	}
	return result, nil
}

func (ev *Evaluator) evalBinary(n *binaryNode) (*big.Float, error) {
	left, err := ev.evalNode(n.left)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalNode(n.right)
	if err != nil {
		return nil, err
	}

	out := new(big.Float).SetPrec(ev.prec)
	switch n.op {
	case tokPlus:
		return out.Add(left, right), nil
	case tokMinus:
		return out.Sub(left, right), nil
	case tokStar:
		return out.Mul(left, right), nil
	case tokSlash:
		if right.Sign() == 0 {
			return nil, schema.NewEvalError(schema.DivisionByZeroError,
				"division by zero at position %d", n.pos)
		}
		return out.Quo(left, right), nil
	case tokCaret:
		result, err := bigmath.Pow(left, right)
		if err != nil {
			return nil, mapMathError(err, "^")
		}
		return result, nil
	}
	return nil, schema.NewEvalError(schema.ParseError, "unsupported operator")
}

// mapMathError converts bigmath sentinel errors to the error taxonomy.
func mapMathError(err error, op string) error {
	switch {
	case errors.Is(err, bigmath.ErrDivisionByZero):
		return schema.NewEvalError(schema.DivisionByZeroError, "%s: %v", op, err)
	case errors.Is(err, bigmath.ErrNonFinite):
		return schema.NewEvalError(schema.DomainError, "%s: %v", op, err)
	default:
		return schema.NewEvalError(schema.DomainError, "%s: %v", op, err)
	}
}

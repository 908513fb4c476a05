// Package bigmath provides elementary functions on *big.Float at arbitrary
// precision. Exp, Log, Pow and Sqrt primitives come from
// github.com/ALTree/bigfloat; the trigonometric and hyperbolic layer is
// built on top via Taylor series with argument reduction against the stored
// pi literal. All functions work at the input's precision plus guard bits
// and round the result back to the input's precision.
package bigmath

import (
	"errors"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/quarkw/constfit/core/constants"
)

// guardBits is the extra mantissa precision carried through intermediate
// series terms so the reported digits are not polluted by rounding.
const guardBits = 64

// maxExpArg bounds exponent magnitudes. Beyond this the result exponent
// would approach big.Float's limit and evaluation cost explodes.
const maxExpArg = 1 << 26

// Sentinel errors surfaced to the evaluator, which maps them onto the
// error taxonomy.
var (
	ErrDomain         = errors.New("argument outside function domain")
	ErrNonFinite      = errors.New("result is not finite")
	ErrDivisionByZero = errors.New("division by zero")
)

// Pi returns pi at the given mantissa precision in bits.
func Pi(prec uint) *big.Float {
	pi, _ := constants.Get("pi", prec)
	return pi
}

// Exp returns e**x.
func Exp(x *big.Float) (*big.Float, error) {
	if tooLarge(x) {
		return nil, ErrNonFinite
	}
	return bigfloat.Exp(x), nil
}

// Log returns the natural logarithm of x. x must be positive.
func Log(x *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 {
		return nil, ErrDomain
	}
	return bigfloat.Log(x), nil
}

// Log10 returns the base-10 logarithm of x. x must be positive.
func Log10(x *big.Float) (*big.Float, error) {
	ln, err := Log(x)
	if err != nil {
		return nil, err
	}
	prec := x.Prec() + guardBits
	ln10, _ := constants.Get("ln10", prec)
	return new(big.Float).SetPrec(x.Prec()).Quo(ln, ln10), nil
}

// Sqrt returns the square root of x. x must be non-negative.
func Sqrt(x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, ErrDomain
	}
	return bigfloat.Sqrt(x), nil
}

// Pow returns base**exp. Negative bases are allowed only with integer
// exponents; a zero base with a negative exponent is a division by zero.
func Pow(base, exp *big.Float) (*big.Float, error) {
	prec := max(base.Prec(), exp.Prec())
	if exp.Sign() == 0 {
		return one(prec), nil
	}
	if base.Sign() == 0 {
		if exp.Sign() < 0 {
			return nil, ErrDivisionByZero
		}
		return new(big.Float).SetPrec(prec), nil
	}

	// Overflow estimate: |exp| * log2(|base|) is the result's bit exponent.
	baseExp := base.MantExp(nil)
	if expF, _ := exp.Float64(); expF > float64(maxExpArg) || expF < -float64(maxExpArg) ||
		expF*float64(baseExp) > maxExpArg || expF*float64(baseExp) < -maxExpArg {
		return nil, ErrNonFinite
	}

	if base.Sign() > 0 {
		return bigfloat.Pow(base, exp), nil
	}

	if !exp.IsInt() {
		return nil, ErrDomain
	}
	n, _ := exp.Int(nil)
	absBase := new(big.Float).SetPrec(prec).Abs(base)
	r := bigfloat.Pow(absBase, exp)
	if n.Bit(0) == 1 {
		r.Neg(r)
	}
	return r, nil
}

// Sin returns the sine of x (radians).
func Sin(x *big.Float) *big.Float {
	prec := x.Prec() + guardBits
	r := reduceAngle(x, prec)

	sum := new(big.Float).SetPrec(prec).Set(r)
	term := new(big.Float).SetPrec(prec).Set(r)
	rsq := new(big.Float).SetPrec(prec).Mul(r, r)
	for k := int64(1); ; k++ {
		term.Mul(term, rsq)
		term.Quo(term, new(big.Float).SetPrec(prec).SetInt64(2*k*(2*k+1)))
		term.Neg(term)
		sum.Add(sum, term)
		if negligible(term, prec) {
			break
		}
	}
	return sum.SetPrec(x.Prec())
}

// Cos returns the cosine of x (radians).
func Cos(x *big.Float) *big.Float {
	prec := x.Prec() + guardBits
	r := reduceAngle(x, prec)

	sum := one(prec)
	term := one(prec)
	rsq := new(big.Float).SetPrec(prec).Mul(r, r)
	for k := int64(1); ; k++ {
		term.Mul(term, rsq)
		term.Quo(term, new(big.Float).SetPrec(prec).SetInt64((2*k-1)*(2*k)))
		term.Neg(term)
		sum.Add(sum, term)
		if negligible(term, prec) {
			break
		}
	}
	return sum.SetPrec(x.Prec())
}

// Tan returns the tangent of x (radians).
func Tan(x *big.Float) (*big.Float, error) {
	c := Cos(x)
	if c.Sign() == 0 {
		return nil, ErrDomain
	}
	s := Sin(x)
	return new(big.Float).SetPrec(x.Prec()).Quo(s, c), nil
}

// Atan returns the arctangent of x.
func Atan(x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(x.Prec())
	}
	prec := x.Prec() + guardBits

	y := new(big.Float).SetPrec(prec).Abs(x)
	unit := one(prec)

	// Fold |x| > 1 through atan(x) = pi/2 - atan(1/x).
	invert := y.Cmp(unit) > 0
	if invert {
		y = new(big.Float).SetPrec(prec).Quo(unit, y)
	}

	// Halve via atan(y) = 2*atan(y / (1 + sqrt(1 + y^2))) until the
	// Maclaurin series converges quickly.
	small := new(big.Float).SetPrec(prec).SetFloat64(0x1p-8)
	halvings := 0
	for y.Cmp(small) > 0 {
		ysq := new(big.Float).SetPrec(prec).Mul(y, y)
		den := new(big.Float).SetPrec(prec).Add(unit, bigfloat.Sqrt(new(big.Float).SetPrec(prec).Add(unit, ysq)))
		y.Quo(y, den)
		halvings++
	}

	sum := new(big.Float).SetPrec(prec).Set(y)
	pow := new(big.Float).SetPrec(prec).Set(y)
	ysq := new(big.Float).SetPrec(prec).Mul(y, y)
	for k := int64(1); ; k++ {
		pow.Mul(pow, ysq)
		term := new(big.Float).SetPrec(prec).Quo(pow, new(big.Float).SetPrec(prec).SetInt64(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if negligible(term, prec) {
			break
		}
	}
	for range halvings {
		sum.Add(sum, sum)
	}

	if invert {
		halfPi := new(big.Float).SetPrec(prec).Quo(Pi(prec), two(prec))
		sum = new(big.Float).SetPrec(prec).Sub(halfPi, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return sum.SetPrec(x.Prec())
}

// Asin returns the arcsine of x. x must be in [-1, 1].
func Asin(x *big.Float) (*big.Float, error) {
	prec := x.Prec() + guardBits
	abs := new(big.Float).SetPrec(prec).Abs(x)
	unit := one(prec)

	switch abs.Cmp(unit) {
	case 1:
		return nil, ErrDomain
	case 0:
		halfPi := new(big.Float).SetPrec(prec).Quo(Pi(prec), two(prec))
		if x.Sign() < 0 {
			halfPi.Neg(halfPi)
		}
		return halfPi.SetPrec(x.Prec()), nil
	}

	// asin(x) = atan(x / sqrt(1 - x^2))
	xx := new(big.Float).SetPrec(prec).Mul(x, x)
	den := bigfloat.Sqrt(new(big.Float).SetPrec(prec).Sub(unit, xx))
	arg := new(big.Float).SetPrec(prec).Quo(new(big.Float).SetPrec(prec).Set(x), den)
	return Atan(arg).SetPrec(x.Prec()), nil
}

// Acos returns the arccosine of x. x must be in [-1, 1].
func Acos(x *big.Float) (*big.Float, error) {
	as, err := Asin(x)
	if err != nil {
		return nil, err
	}
	prec := x.Prec() + guardBits
	halfPi := new(big.Float).SetPrec(prec).Quo(Pi(prec), two(prec))
	return new(big.Float).SetPrec(x.Prec()).Sub(halfPi, as), nil
}

// Sinh returns the hyperbolic sine of x.
func Sinh(x *big.Float) (*big.Float, error) {
	ex, emx, err := expPair(x)
	if err != nil {
		return nil, err
	}
	prec := x.Prec() + guardBits
	diff := new(big.Float).SetPrec(prec).Sub(ex, emx)
	return new(big.Float).SetPrec(x.Prec()).Quo(diff, two(prec)), nil
}

// Cosh returns the hyperbolic cosine of x.
func Cosh(x *big.Float) (*big.Float, error) {
	ex, emx, err := expPair(x)
	if err != nil {
		return nil, err
	}
	prec := x.Prec() + guardBits
	sum := new(big.Float).SetPrec(prec).Add(ex, emx)
	return new(big.Float).SetPrec(x.Prec()).Quo(sum, two(prec)), nil
}

// Tanh returns the hyperbolic tangent of x.
func Tanh(x *big.Float) (*big.Float, error) {
	ex, emx, err := expPair(x)
	if err != nil {
		return nil, err
	}
	prec := x.Prec() + guardBits
	num := new(big.Float).SetPrec(prec).Sub(ex, emx)
	den := new(big.Float).SetPrec(prec).Add(ex, emx)
	return new(big.Float).SetPrec(x.Prec()).Quo(num, den), nil
}

// expPair returns (e**x, e**-x) at guard precision.
func expPair(x *big.Float) (ex, emx *big.Float, err error) {
	if tooLarge(x) {
		return nil, nil, ErrNonFinite
	}
	prec := x.Prec() + guardBits
	wide := new(big.Float).SetPrec(prec).Set(x)
	ex = bigfloat.Exp(wide)
	emx = new(big.Float).SetPrec(prec).Quo(one(prec), ex)
	return ex, emx, nil
}

// reduceAngle folds x into [-pi, pi] at the given precision.
func reduceAngle(x *big.Float, prec uint) *big.Float {
	pi := Pi(prec)
	twoPi := new(big.Float).SetPrec(prec).Add(pi, pi)

	r := new(big.Float).SetPrec(prec).Set(x)
	q := new(big.Float).SetPrec(prec).Quo(r, twoPi)
	if qi, _ := q.Int(nil); qi.Sign() != 0 {
		qf := new(big.Float).SetPrec(prec).SetInt(qi)
		r.Sub(r, new(big.Float).SetPrec(prec).Mul(qf, twoPi))
	}

	if r.Cmp(pi) > 0 {
		r.Sub(r, twoPi)
	}
	negPi := new(big.Float).SetPrec(prec).Neg(pi)
	if r.Cmp(negPi) < 0 {
		r.Add(r, twoPi)
	}
	return r
}

// negligible reports whether a series term no longer moves the sum at the
// working precision.
func negligible(term *big.Float, prec uint) bool {
	if term.Sign() == 0 {
		return true
	}
	return term.MantExp(nil) < -(int(prec) + 8)
}

// tooLarge reports whether |x| exceeds the exponent-argument bound.
func tooLarge(x *big.Float) bool {
	bound := new(big.Float).SetPrec(64).SetInt64(maxExpArg)
	abs := new(big.Float).SetPrec(64).Abs(x)
	return abs.Cmp(bound) > 0
}

func one(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetInt64(1)
}

func two(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetInt64(2)
}

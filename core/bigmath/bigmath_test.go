package bigmath

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrec = 200

// closeTo asserts |got - want| < 2^-bound.
func closeTo(t *testing.T, got, want *big.Float, bound int) {
	t.Helper()
	diff := new(big.Float).SetPrec(testPrec).Sub(got, want)
	diff.Abs(diff)
	limit := new(big.Float).SetMantExp(big.NewFloat(1), -bound)
	assert.True(t, diff.Cmp(limit) < 0,
		"got %s, want %s (diff %s)", got.Text('g', 30), want.Text('g', 30), diff.Text('g', 5))
}

func bf(s string) *big.Float {
	f, ok := new(big.Float).SetPrec(testPrec).SetString(s)
	if !ok {
		panic("bad literal " + s)
	}
	return f
}

func TestPi(t *testing.T) {
	pi := Pi(testPrec)
	closeTo(t, pi, bf("3.14159265358979323846264338327950288419716939937510582097"), 180)
}

func TestSinKnownValues(t *testing.T) {
	pi := Pi(testPrec)

	// sin(pi/6) = 1/2
	arg := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(6))
	closeTo(t, Sin(arg), bf("0.5"), 180)

	// sin(pi) = 0
	closeTo(t, Sin(pi), bf("0"), 180)

	// sin(-x) = -sin(x)
	x := bf("0.7")
	neg := new(big.Float).SetPrec(testPrec).Neg(x)
	sum := new(big.Float).SetPrec(testPrec).Add(Sin(x), Sin(neg))
	closeTo(t, sum, bf("0"), 180)
}

func TestCosKnownValues(t *testing.T) {
	pi := Pi(testPrec)

	// cos(pi/3) = 1/2
	arg := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(3))
	closeTo(t, Cos(arg), bf("0.5"), 180)

	// cos(0) = 1
	closeTo(t, Cos(bf("0")), bf("1"), 190)
}

func TestPythagoreanIdentity(t *testing.T) {
	for _, lit := range []string{"0.1", "1", "2.5", "10", "100"} {
		x := bf(lit)
		s, c := Sin(x), Cos(x)
		s.Mul(s, s)
		c.Mul(c, c)
		closeTo(t, new(big.Float).SetPrec(testPrec).Add(s, c), bf("1"), 170)
	}
}

func TestTan(t *testing.T) {
	pi := Pi(testPrec)

	// tan(pi/4) = 1
	arg := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(4))
	got, err := Tan(arg)
	require.NoError(t, err)
	closeTo(t, got, bf("1"), 170)
}

func TestAtan(t *testing.T) {
	pi := Pi(testPrec)

	// atan(1) = pi/4
	quarter := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(4))
	closeTo(t, Atan(bf("1")), quarter, 180)

	// atan folds large arguments: atan(x) + atan(1/x) = pi/2 for x > 0
	half := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(2))
	sum := new(big.Float).SetPrec(testPrec).Add(Atan(bf("5")), Atan(bf("0.2")))
	closeTo(t, sum, half, 180)
}

func TestAsinAcos(t *testing.T) {
	pi := Pi(testPrec)
	half := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(2))

	got, err := Asin(bf("1"))
	require.NoError(t, err)
	closeTo(t, got, half, 190)

	got, err = Asin(bf("0.5"))
	require.NoError(t, err)
	sixth := new(big.Float).SetPrec(testPrec).Quo(pi, big.NewFloat(6))
	closeTo(t, got, sixth, 180)

	got, err = Acos(bf("0"))
	require.NoError(t, err)
	closeTo(t, got, half, 180)

	_, err = Asin(bf("2"))
	assert.ErrorIs(t, err, ErrDomain)
}

func TestHyperbolic(t *testing.T) {
	// cosh^2 - sinh^2 = 1
	x := bf("1.3")
	s, err := Sinh(x)
	require.NoError(t, err)
	c, err := Cosh(x)
	require.NoError(t, err)
	s.Mul(s, s)
	c.Mul(c, c)
	closeTo(t, new(big.Float).SetPrec(testPrec).Sub(c, s), bf("1"), 170)

	// tanh(0) = 0
	th, err := Tanh(bf("0"))
	require.NoError(t, err)
	closeTo(t, th, bf("0"), 190)
}

func TestExpLogRoundTrip(t *testing.T) {
	x := bf("2.71828")
	ex, err := Exp(x)
	require.NoError(t, err)
	back, err := Log(ex)
	require.NoError(t, err)
	closeTo(t, back, x, 180)

	// log10(1000) = 3
	l, err := Log10(bf("1000"))
	require.NoError(t, err)
	closeTo(t, l, bf("3"), 180)
}

func TestDomainErrors(t *testing.T) {
	_, err := Log(bf("0"))
	assert.ErrorIs(t, err, ErrDomain)

	_, err = Log(bf("-1"))
	assert.ErrorIs(t, err, ErrDomain)

	_, err = Sqrt(bf("-4"))
	assert.ErrorIs(t, err, ErrDomain)
}

func TestPow(t *testing.T) {
	tests := []struct {
		name string
		base string
		exp  string
		want string
	}{
		{name: "integer power", base: "2", exp: "10", want: "1024"},
		{name: "fractional exponent", base: "4", exp: "0.5", want: "2"},
		{name: "zero exponent", base: "7", exp: "0", want: "1"},
		{name: "zero base positive exponent", base: "0", exp: "3", want: "0"},
		{name: "negative base integer exponent", base: "-2", exp: "3", want: "-8"},
		{name: "negative base even exponent", base: "-3", exp: "2", want: "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pow(bf(tt.base), bf(tt.exp))
			require.NoError(t, err)
			closeTo(t, got, bf(tt.want), 160)
		})
	}

	_, err := Pow(bf("0"), bf("-1"))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// Enormous powers overflow rather than loop forever
	_, err = Pow(bf("10"), bf("1e20"))
	assert.ErrorIs(t, err, ErrNonFinite)
}

// Package constants holds the built-in table of named mathematical
// constants. The table is immutable for the process lifetime and shared
// read-only by all evaluations; values are stored as decimal literals with
// at least 100 significant digits and parsed to *big.Float at the caller's
// working precision on demand.
package constants

import (
	"math/big"
	"sort"
	"strings"
)

// Constant is one named entry in the table.
type Constant struct {
	Name        string
	Value       string // decimal literal, >=100 significant digits
	Description string
	Aliases     []string
}

// table is ordered for stable listing output.
var table = []Constant{
	{
		Name:        "pi",
		Value:       "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679",
		Description: "Ratio of a circle's circumference to its diameter",
		Aliases:     []string{"π"},
	},
	{
		Name:        "e",
		Value:       "2.7182818284590452353602874713526624977572470936999595749669676277240766303535475945713821785251664274",
		Description: "Base of the natural logarithm",
	},
	{
		Name:        "phi",
		Value:       "1.6180339887498948482045868343656381177203091798057628621354486227052604628189024497072072041893911374",
		Description: "Golden ratio, (1+sqrt(5))/2",
		Aliases:     []string{"φ", "golden"},
	},
	{
		Name:        "gamma",
		Value:       "0.5772156649015328606065120900824024310421593359399235988057672348848677267776646709369470632917467495",
		Description: "Euler-Mascheroni constant",
		Aliases:     []string{"γ"},
	},
	{
		Name:        "sqrt2",
		Value:       "1.4142135623730950488016887242096980785696718753769480731766797379907324784621070388503875343276415727",
		Description: "Square root of 2",
	},
	{
		Name:        "sqrt3",
		Value:       "1.7320508075688772935274463415058723669428052538103806280558069794519330169088000370811461867572485756",
		Description: "Square root of 3",
	},
	{
		Name:        "ln2",
		Value:       "0.6931471805599453094172321214581765680755001343602552541206800094933936219696947156058633269964186875",
		Description: "Natural logarithm of 2",
	},
	{
		Name:        "ln10",
		Value:       "2.3025850929940456840179914546843642076011014886287729760333279009675726096773524802359972050895982983",
		Description: "Natural logarithm of 10",
	},
	{
		Name:        "zeta3",
		Value:       "1.2020569031595942853997381615114499907649862923404988817922715553418382057863130901864558736093352581",
		Description: "Apery's constant, zeta(3)",
	},
	{
		Name:        "catalan",
		Value:       "0.9159655941772190150546035149323841107741493742816721342664981196217630197762547694793565129261151062",
		Description: "Catalan's constant",
	},
}

// index maps lowercased names and aliases to table positions.
var index = func() map[string]int {
	m := make(map[string]int, len(table)*2)
	for i, c := range table {
		m[strings.ToLower(c.Name)] = i
		for _, a := range c.Aliases {
			m[strings.ToLower(a)] = i
		}
	}
	return m
}()

// All returns the table entries in listing order.
func All() []Constant {
	out := make([]Constant, len(table))
	copy(out, table)
	return out
}

// Names returns the canonical constant names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for _, c := range table {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name (case-insensitive, aliases included) to its decimal
// literal.
func Lookup(name string) (string, bool) {
	i, ok := index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return table[i].Value, true
}

// Get parses the named constant at the given mantissa precision in bits.
func Get(name string, prec uint) (*big.Float, bool) {
	lit, ok := Lookup(name)
	if !ok {
		return nil, false
	}
	f, ok := new(big.Float).SetPrec(prec).SetString(lit)
	if !ok {
		return nil, false
	}
	return f, true
}

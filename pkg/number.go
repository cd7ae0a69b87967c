package pasci

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

type numberKind int

const (
	numberNone numberKind = iota
	numberInteger
	numberReal
)

// Number is the single numeric domain of the language. It is either an
// arbitrary-precision integer or a real. The zero Number is "no value" and is
// what statements evaluate to.
type Number struct {
	kind numberKind
	i    *big.Int
	r    float64
}

func Integer(v int64) Number {
	return Number{kind: numberInteger, i: big.NewInt(v)}
}

func Real(v float64) Number {
	return Number{kind: numberReal, r: v}
}

// ParseInteger reads a base-10 digit run of any length.
func ParseInteger(digits string) (Number, bool) {
	i, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Number{}, false
	}

	return Number{kind: numberInteger, i: i}, true
}

func (n Number) IsValid() bool {
	return n.kind != numberNone
}

func (n Number) IsReal() bool {
	return n.kind == numberReal
}

func (n Number) IsZero() bool {
	switch n.kind {
	case numberInteger:
		return n.i.Sign() == 0
	case numberReal:
		return n.r == 0
	}

	return false
}

// IsFinite is false for reals that overflowed to an infinity or NaN.
func (n Number) IsFinite() bool {
	if n.kind != numberReal {
		return true
	}

	return !math.IsInf(n.r, 0) && !math.IsNaN(n.r)
}

// Float converts the number to a float64, rounding big integers. Integers out of
// the float64 range become infinities.
func (n Number) Float() float64 {
	switch n.kind {
	case numberInteger:
		f, _ := new(big.Float).SetInt(n.i).Float64()
		return f
	case numberReal:
		return n.r
	}

	return 0
}

// Int returns the integer value and whether the number is an integer that fits in an int64.
func (n Number) Int() (int64, bool) {
	if n.kind != numberInteger || !n.i.IsInt64() {
		return 0, false
	}

	return n.i.Int64(), true
}

func (n Number) Add(m Number) Number {
	if n.kind == numberInteger && m.kind == numberInteger {
		return Number{kind: numberInteger, i: new(big.Int).Add(n.i, m.i)}
	}

	return Real(n.Float() + m.Float())
}

func (n Number) Sub(m Number) Number {
	if n.kind == numberInteger && m.kind == numberInteger {
		return Number{kind: numberInteger, i: new(big.Int).Sub(n.i, m.i)}
	}

	return Real(n.Float() - m.Float())
}

func (n Number) Mul(m Number) Number {
	if n.kind == numberInteger && m.kind == numberInteger {
		return Number{kind: numberInteger, i: new(big.Int).Mul(n.i, m.i)}
	}

	return Real(n.Float() * m.Float())
}

// Quo is real division, it never truncates. The caller checks for a zero divisor.
func (n Number) Quo(m Number) Number {
	if n.kind == numberInteger && m.kind == numberInteger {
		q := new(big.Rat).SetFrac(n.i, m.i)
		f, _ := q.Float64()
		return Real(f)
	}

	return Real(n.Float() / m.Float())
}

func (n Number) Neg() Number {
	switch n.kind {
	case numberInteger:
		return Number{kind: numberInteger, i: new(big.Int).Neg(n.i)}
	case numberReal:
		return Real(-n.r)
	}

	return n
}

// Equal compares two numbers by value. An integer and a real holding the same
// quantity are equal.
func (n Number) Equal(m Number) bool {
	if n.kind == numberNone || m.kind == numberNone {
		return n.kind == m.kind
	}

	if n.kind == numberInteger && m.kind == numberInteger {
		return n.i.Cmp(m.i) == 0
	}

	return n.Float() == m.Float()
}

// String prints integers in base 10 and reals always with a fractional part.
func (n Number) String() string {
	switch n.kind {
	case numberInteger:
		return n.i.String()
	case numberReal:
		format := byte('f')
		if a := math.Abs(n.r); a != 0 && (a < 1e-4 || a >= 1e16) {
			format = 'g'
		}

		s := strconv.FormatFloat(n.r, format, -1, 64)
		if strings.ContainsAny(s, ".eIN") {
			return s
		}

		return s + ".0"
	}

	return "<none>"
}

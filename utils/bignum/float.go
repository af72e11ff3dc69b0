// Package bignum implements arbitrary precision arithmetic helpers.
package bignum

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// DefaultPrecision is the precision, in bits, used by [Log2] for its intermediate values.
const DefaultPrecision = 128

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valide types for x are: int, int64, uint, uint64, float64, *big.Int or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valide types are int, int64, uint, uint64, float64, *big.Int or *big.Float but is %T", x))
	}

	return
}

// Log return ln(x) with the precision of x.
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Log2 returns log2(|x|) as a float64, or -Inf if x is zero.
// Unlike float64(x.BitLen()), the result keeps the fractional part,
// which matters when comparing moduli that are close to a power of two.
func Log2(x *big.Int) float64 {

	if x.Sign() == 0 {
		return math.Inf(-1)
	}

	xf := NewFloat(new(big.Int).Abs(x), DefaultPrecision)
	ln2 := Log(NewFloat(2, DefaultPrecision))

	log2, _ := new(big.Float).Quo(Log(xf), ln2).Float64()
	return log2
}

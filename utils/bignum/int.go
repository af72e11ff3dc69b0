package bignum

import (
	"math/big"
)

// DivRound sets the target i to round(a/b), rounding half away from zero.
// i may alias a or b.
func DivRound(a, b, i *big.Int) {
	_a := new(big.Int).Set(a)
	_b := new(big.Int).Set(b)
	r := new(big.Int)
	i.QuoRem(_a, _b, r)
	r.Lsh(r, 1)
	if r.CmpAbs(_b) != -1 {
		if _a.Sign() == _b.Sign() {
			i.Add(i, big.NewInt(1))
		} else {
			i.Sub(i, big.NewInt(1))
		}
	}
}

// Center sets x to its centered representative modulo q, i.e. in (-q/2, q/2],
// assuming 0 <= x < q.
func Center(x, q, qHalf *big.Int) {
	if x.Cmp(qHalf) == 1 {
		x.Sub(x, q)
	}
}

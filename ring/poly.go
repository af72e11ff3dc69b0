package ring

import (
	"github.com/google/go-cmp/cmp"
)

// Poly is the structure that contains the coefficients of a polynomial
// in RNS representation: Coeffs[i][j] is the j-th coefficient modulo the i-th prime.
type Poly struct {
	Coeffs [][]uint64 // Dimension-2 slice of coefficients (re-slice of Buff)
	Buff   []uint64   // Dimension-1 slice of coefficient
}

// NewPoly creates a new polynomial with N coefficients set to zero and Level+1 moduli.
func NewPoly(N, Level int) (pol Poly) {

	pol.Buff = make([]uint64, N*(Level+1))
	pol.Coeffs = make([][]uint64, Level+1)
	for i := 0; i < Level+1; i++ {
		pol.Coeffs[i] = pol.Buff[i*N : (i+1)*N]
	}

	return
}

// Resize resizes the level of the target polynomial to the provided level.
// If the provided level is larger than the current level, then allocates zero
// coefficients, otherwise dereferences the coefficients above the provided level.
func (pol *Poly) Resize(level int) {
	N := pol.N()
	if pol.Level() > level {
		pol.Buff = pol.Buff[:N*(level+1)]
		pol.Coeffs = pol.Coeffs[:level+1]
	} else if level > pol.Level() {
		pol.Buff = append(pol.Buff, make([]uint64, N*(level-pol.Level()))...)
		pol.Coeffs = append(pol.Coeffs, make([][]uint64, level-pol.Level())...)
		for i := 0; i < level+1; i++ {
			pol.Coeffs[i] = pol.Buff[i*N : (i+1)*N]
		}
	}
}

// N returns the number of coefficients of the polynomial, which equals the degree of the Ring cyclotomic polynomial.
func (pol Poly) N() int {
	if len(pol.Coeffs) == 0 {
		return 0
	}
	return len(pol.Coeffs[0])
}

// Level returns the current number of moduli minus 1.
func (pol Poly) Level() int {
	return len(pol.Coeffs) - 1
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() *Poly {
	p1 := NewPoly(pol.N(), pol.Level())
	copy(p1.Buff, pol.Buff)
	return &p1
}

// Copy copies the coefficients of p1 on the target polynomial.
// Only the moduli shared by both polynomials are copied.
func (pol *Poly) Copy(p1 Poly) {
	pol.CopyLvl(min(pol.Level(), p1.Level()), p1)
}

// CopyLvl copies the coefficients of p1 on the target polynomial,
// for up to level+1 moduli.
func (pol *Poly) CopyLvl(level int, p1 Poly) {
	for i := 0; i < level+1; i++ {
		copy(pol.Coeffs[i], p1.Coeffs[i])
	}
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
// This function checks for strict equality between the polynomial coefficients
// and does not consider congruence modulo the primes as equality.
func (pol Poly) Equal(other *Poly) bool {
	if other == nil {
		return false
	}
	return cmp.Equal(pol.Coeffs, other.Coeffs)
}

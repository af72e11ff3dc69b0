package ring

// DivRoundByModulus evaluates pOut = round(x / s.Modulus) mod Q, where Q is the modulus of the
// ring at its current level and x is the integer given by its residues pQ modulo Q and pLast
// modulo s.Modulus. The modulus of s must not be one of the moduli of the ring.
// Inputs and output are in the coefficient domain, and pOut can alias pQ.
func (r Ring) DivRoundByModulus(pQ Poly, s *SubRing, pLast []uint64, pOut Poly) {

	qLast := s.Modulus
	half := qLast >> 1

	// buff = [x + half]_{qLast}
	buff := make([]uint64, len(pLast))
	for j := range pLast {
		buff[j] = CRed(pLast[j]+half, qLast)
	}

	for i, si := range r.SubRings[:r.level+1] {

		q, qInv := si.Modulus, si.MRedConstant

		halfModq := half % q
		qLastInv := MForm(ModInverse(qLast%q, q), q)

		pQtmp, pOuttmp := pQ.Coeffs[i], pOut.Coeffs[i]

		// (x + half - [x + half]_{qLast}) / qLast mod q
		for j := range pOuttmp {
			v := CRed(pQtmp[j]+halfModq, q)
			v = CRed(v+q-buff[j]%q, q)
			pOuttmp[j] = MRed(v, qLastInv, q, qInv)
		}
	}
}

// DivRoundByLastModulus divides p1 by the last modulus of the ring at its current level,
// rounds the result and writes it on p2, which must be at least at level r.Level()-1.
// The level of p2 is left unchanged; only its first r.Level() moduli are written.
// Input and output are in the coefficient domain, and p2 can alias p1.
func (r Ring) DivRoundByLastModulus(p1, p2 Poly) {
	level := r.level
	if level == 0 {
		panic("cannot DivRoundByLastModulus: ring is already at level 0")
	}
	r.AtLevel(level-1).DivRoundByModulus(p1, r.SubRings[level], p1.Coeffs[level], p2)
}

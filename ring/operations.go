package ring

// Add evaluates p3 = p1 + p2 coefficient-wise in the ring.
func (r Ring) Add(p1, p2, p3 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q := s.Modulus
		p1tmp, p2tmp, p3tmp := p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i]
		for j := range p3tmp {
			p3tmp[j] = CRed(p1tmp[j]+p2tmp[j], q)
		}
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise in the ring.
func (r Ring) Sub(p1, p2, p3 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q := s.Modulus
		p1tmp, p2tmp, p3tmp := p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i]
		for j := range p3tmp {
			p3tmp[j] = CRed(p1tmp[j]+q-p2tmp[j], q)
		}
	}
}

// Neg evaluates p2 = -p1 coefficient-wise in the ring.
func (r Ring) Neg(p1, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q := s.Modulus
		p1tmp, p2tmp := p1.Coeffs[i], p2.Coeffs[i]
		for j := range p2tmp {
			p2tmp[j] = CRed(q-p1tmp[j], q)
		}
	}
}

// MulCoeffsMontgomery evaluates p3 = p1 * p2 coefficient-wise in the ring, with
// p2 in Montgomery form. In the NTT domain this is the product in the ring.
func (r Ring) MulCoeffsMontgomery(p1, p2, p3 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q, qInv := s.Modulus, s.MRedConstant
		p1tmp, p2tmp, p3tmp := p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i]
		for j := range p3tmp {
			p3tmp[j] = MRed(p1tmp[j], p2tmp[j], q, qInv)
		}
	}
}

// MulCoeffsMontgomeryThenAdd evaluates p3 = p3 + p1 * p2 coefficient-wise in the ring,
// with p2 in Montgomery form.
func (r Ring) MulCoeffsMontgomeryThenAdd(p1, p2, p3 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q, qInv := s.Modulus, s.MRedConstant
		p1tmp, p2tmp, p3tmp := p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i]
		for j := range p3tmp {
			p3tmp[j] = CRed(p3tmp[j]+MRed(p1tmp[j], p2tmp[j], q, qInv), q)
		}
	}
}

// MForm switches p1 to the Montgomery domain and writes the result on p2.
func (r Ring) MForm(p1, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q := s.Modulus
		p1tmp, p2tmp := p1.Coeffs[i], p2.Coeffs[i]
		for j := range p2tmp {
			p2tmp[j] = MForm(p1tmp[j], q)
		}
	}
}

// IMForm switches back p1 from the Montgomery domain to the conventional domain and writes the result on p2.
func (r Ring) IMForm(p1, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q, qInv := s.Modulus, s.MRedConstant
		p1tmp, p2tmp := p1.Coeffs[i], p2.Coeffs[i]
		for j := range p2tmp {
			p2tmp[j] = IMForm(p1tmp[j], q, qInv)
		}
	}
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		q, qInv := s.Modulus, s.MRedConstant
		scalarMont := MForm(scalar%q, q)
		p1tmp, p2tmp := p1.Coeffs[i], p2.Coeffs[i]
		for j := range p2tmp {
			p2tmp[j] = MRed(p1tmp[j], scalarMont, q, qInv)
		}
	}
}

// NTT evaluates p2 = NTT(p1).
func (r Ring) NTT(p1, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.NTT(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// INTT evaluates p2 = INTT(p1).
func (r Ring) INTT(p1, p2 Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.INTT(p1.Coeffs[i], p2.Coeffs[i])
	}
}

package ring

// NTT evaluates p2 = NTT(p1) in Z_q[X]/(X^N+1), with the output in bit-reversed order.
// p1 and p2 can be the same slice.
func (s *SubRing) NTT(p1, p2 []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	N := s.N
	q := s.Modulus
	qInv := s.MRedConstant
	roots := s.RootsForward

	var U, V, W uint64

	t := N
	for m := 1; m < N; m <<= 1 {

		t >>= 1

		for i := 0; i < m; i++ {

			j1 := 2 * i * t
			W = roots[m+i]

			for j := j1; j < j1+t; j++ {
				U = p2[j]
				V = MRed(p2[j+t], W, q, qInv)
				p2[j] = CRed(U+V, q)
				p2[j+t] = CRed(U+q-V, q)
			}
		}
	}
}

// INTT evaluates p2 = INTT(p1), the inverse of [SubRing.NTT].
// p1 and p2 can be the same slice.
func (s *SubRing) INTT(p1, p2 []uint64) {

	if &p1[0] != &p2[0] {
		copy(p2, p1)
	}

	N := s.N
	q := s.Modulus
	qInv := s.MRedConstant
	roots := s.RootsBackward

	var U, V, W uint64

	t := 1
	for m := N; m > 1; m >>= 1 {

		j1 := 0
		h := m >> 1

		for i := 0; i < h; i++ {

			W = roots[h+i]

			for j := j1; j < j1+t; j++ {
				U = p2[j]
				V = p2[j+t]
				p2[j] = CRed(U+V, q)
				p2[j+t] = MRed(U+q-V, W, q, qInv)
			}

			j1 += t << 1
		}

		t <<= 1
	}

	for j := 0; j < N; j++ {
		p2[j] = MRed(p2[j], s.NInv, q, qInv)
	}
}

package bfv

var (
	// ExampleParametersLogN13LogQP218 is an example parameters set with logN=13 and logQP=218, with a
	// 174-bit ciphertext modulus split in four moduli, one 44-bit key-switching modulus and a 20-bit
	// plaintext modulus enabling batching. The coefficient modulus sizes follow the usual default for
	// degree 8192, and the plaintext modulus is the largest 20-bit prime that is 1 mod 2N.
	ExampleParametersLogN13LogQP218 = ParametersLiteral{
		LogN: 13,
		LogQ: []int{43, 43, 44, 44},
		LogP: []int{44},
		LogT: 20,
	}

	// ExampleParametersLogN14LogQP438 is an example parameters set with logN=14 and logQP=438,
	// with a 20-bit plaintext modulus enabling batching.
	ExampleParametersLogN14LogQP438 = ParametersLiteral{
		LogN: 14,
		LogQ: []int{48, 48, 48, 49, 49, 49, 49, 49},
		LogP: []int{49},
		LogT: 20,
	}
)

package bfv

var (
	// TestN12QP218 is a set of test parameters with logN=12 and logQP=218.
	TestN12QP218 = ParametersLiteral{
		LogN: 12,
		LogQ: []int{43, 43, 44, 44},
		LogP: []int{44},
	}

	// TestPlaintextModulus is a list of NTT-friendly plaintext moduli for the test parameters.
	TestPlaintextModulus = []uint64{0x10001, 0xfc001}

	// TestParams is the list of parameters sets used by the tests.
	TestParams = []ParametersLiteral{TestN12QP218}
)

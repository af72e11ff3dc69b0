// Package bfv implements the Brakerski/Fan-Vercauteren scale-invariant homomorphic
// encryption scheme over the ring Z_Q[X]/(X^N+1) in RNS representation.
// It provides key generation, a batching encoder, public-key encryption,
// decryption with invariant noise budget measurement, and an evaluator for
// addition, multiplication with relinearization and modulus switching.
package bfv

import (
	"errors"
)

var (
	// ErrInvalidParameters is returned when a parameter set fails validation.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrEncodingOverflow is returned when a value cannot be represented modulo the plaintext modulus,
	// or when more values than slots are given.
	ErrEncodingOverflow = errors.New("encoding overflow")

	// ErrChainExhausted is returned when a modulus switch is requested on a ciphertext at level 0.
	ErrChainExhausted = errors.New("modulus chain exhausted")

	// ErrLevelMismatch is returned when the operands of a binary operation are not at the same level.
	ErrLevelMismatch = errors.New("operand level mismatch")
)

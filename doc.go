/*
Package bfvnoise is a pure Go implementation of the Brakerski/Fan-Vercauteren (BFV) homomorphic
encryption scheme, reduced to the operations needed to observe how the invariant noise budget of a
ciphertext evolves under homomorphic addition, multiplication and modulus switching.

The repository is organised as follows:

  - ring: RNS polynomial arithmetic in Z_Q[X]/(X^N+1), number theoretic transform, samplers.
  - bfv: parameters, key generation, batching encoder, encryption, decryption with noise budget
    measurement and the homomorphic evaluator.
  - utils: generic helpers, secure and keyed pseudo-random byte sources, arbitrary precision helpers.
  - examples/singleparty/bfv_noise_budget: a command line program printing the noise budget report.
*/
package bfvnoise

package ring

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers bellow 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// IsNTTFriendly returns true if q is a prime equal to 1 mod NthRoot.
func IsNTTFriendly(q, NthRoot uint64) bool {
	return q&(NthRoot-1) == 1 && IsPrime(q)
}

// GenerateNTTPrimes generates n NthRoot NTT friendly primes given logQ = size of the primes.
// It returns the primes closest to 2^logQ, alternating between upward and downward,
// which can result in primes of logQ+1 bits.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 1 || logQ > 61 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimes: logQ=%d must be between 1 and 61", logQ)
	}

	var nextPrime, previousPrime, Qpow2 uint64
	var checkfornextprime, checkforpreviousprime bool

	primes = []uint64{}

	Qpow2 = uint64(1 << logQ)

	nextPrime = Qpow2 + 1
	previousPrime = Qpow2 + 1

	checkfornextprime = true
	checkforpreviousprime = true

	for {

		if !(checkfornextprime || checkforpreviousprime) {
			return nil, fmt.Errorf("cannot GenerateNTTPrimes: not enough %d-bit primes for NthRoot=%d", logQ, NthRoot)
		}

		if checkfornextprime {

			if bits.Len64(nextPrime+uint64(NthRoot)) > logQ+1 {

				checkfornextprime = false

			} else {

				nextPrime += uint64(NthRoot)

				if IsPrime(nextPrime) {

					primes = append(primes, nextPrime)

					if len(primes) == n {
						return
					}
				}
			}
		}

		if checkforpreviousprime {

			if previousPrime <= uint64(NthRoot)+1 {

				checkforpreviousprime = false

			} else {

				previousPrime -= uint64(NthRoot)

				if IsPrime(previousPrime) {

					primes = append(primes, previousPrime)

					if len(primes) == n {
						return
					}
				}
			}
		}
	}
}

// GenerateNTTPrimesP generates n NthRoot NTT friendly primes strictly smaller
// than 2^logP, starting from 2^logP and going downward.
func GenerateNTTPrimesP(logP, NthRoot, n int) (primes []uint64, err error) {

	if logP < 1 || logP > 62 {
		return nil, fmt.Errorf("cannot GenerateNTTPrimesP: logP=%d must be between 1 and 62", logP)
	}

	primes = []uint64{}

	x := uint64(1<<logP) + 1

	for {

		// We start by subtracting NthRoot to ensure that the prime bit-length is smaller than LogP

		if x <= uint64(NthRoot)+1 {
			return nil, fmt.Errorf("cannot GenerateNTTPrimesP: not enough %d-bit primes for NthRoot=%d", logP, NthRoot)
		}

		x -= uint64(NthRoot)

		if IsPrime(x) {

			primes = append(primes, x)

			if len(primes) == n {
				return primes, nil
			}
		}
	}
}

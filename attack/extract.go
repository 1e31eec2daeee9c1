package attack

import (
	"bytes"
	"fmt"
)

// SecretLength determines the exact unpadded length of the secret suffix an
// ECB oracle appends, given the block size and the fixed prefix length.
// The ciphertext length is constant while filler grows within the padding
// of the final block, then jumps by one block; the filler length at the
// jump reveals how much padding the secret leaves.
func SecretLength(o EncryptOracle, blockSize, prefixLen int) (int, error) {
	var c counter
	gap := alignGap(prefixLen, blockSize)
	base, err := c.query(o, bytes.Repeat(fillerA, gap))
	if err != nil {
		return 0, err
	}
	for i := 1; i < blockSize; i++ {
		ct, err := c.query(o, bytes.Repeat(fillerA, gap+i))
		if err != nil {
			return 0, err
		}
		if len(ct) > len(base) {
			return checkLength(len(base) - i - prefixLen - gap)
		}
	}
	// No jump within a block of filler: the secret fills its last block
	// exactly and the base ciphertext carries a full padding block.
	return checkLength(len(base) - blockSize - prefixLen - gap)
}

func checkLength(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: computed secret length %d; prefix length is likely wrong", ErrInconsistentOracle, n)
	}
	return n, nil
}

// ExtractSecret recovers the secret suffix of an ECB oracle of the form
// Enc(prefix || input || secret), one byte per position. Filler aligns the
// next unknown byte to the last slot of a target block; a second query per
// candidate byte then reproduces that block only for the true byte.
//
// The secret's length is resolved up front, so a position with no matching
// candidate means the oracle broke its fixed-suffix contract: the partial
// secret is returned together with ErrInconsistentOracle rather than being
// silently truncated.
func ExtractSecret(o EncryptOracle, blockSize, prefixLen int) ([]byte, error) {
	secretLen, err := SecretLength(o, blockSize, prefixLen)
	if err != nil {
		return nil, err
	}

	var c counter
	gap := alignGap(prefixLen, blockSize)
	start := prefixLen + gap // first block boundary past the prefix
	found := make([]byte, 0, secretLen)
	for len(found) < secretLen {
		b, ok, err := nextSecretByte(o, &c, blockSize, start, gap, found)
		if err != nil {
			return found, err
		}
		if !ok {
			return found, fmt.Errorf("%w: no candidate for byte %d of %d", ErrInconsistentOracle, len(found), secretLen)
		}
		found = append(found, b)
	}
	return found, nil
}

// nextSecretByte runs one step of the extraction: either the next secret
// byte matched, or all 256 candidates were exhausted.
func nextSecretByte(o EncryptOracle, c *counter, blockSize, start, gap int, found []byte) (byte, bool, error) {
	// Filler long enough that the probe block holding the next unknown
	// byte has exactly one free slot at its end.
	blocks := 1 + len(found)/blockSize
	pad := blocks*blockSize - len(found) - 1
	target := start + (blocks-1)*blockSize

	probe := make([]byte, 0, gap+pad+len(found)+1)
	probe = append(probe, bytes.Repeat(fillerA, gap+pad)...)

	ct, err := c.query(o, probe)
	if err != nil {
		return 0, false, err
	}
	want := ct[target : target+blockSize]

	probe = append(probe, found...)
	probe = append(probe, 0)
	for b := 0; b < 256; b++ {
		probe[len(probe)-1] = byte(b)
		ct, err := c.query(o, probe)
		if err != nil {
			return 0, false, err
		}
		if bytes.Equal(ct[target:target+blockSize], want) {
			return byte(b), true, nil
		}
	}
	return 0, false, nil
}

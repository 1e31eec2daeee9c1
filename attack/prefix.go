package attack

import "bytes"

// ResolvePrefixLength determines the length of the fixed, unknown prefix an
// ECB oracle prepends to attacker input, as in Enc(prefix || input || secret).
//
// A probe of two identical filler blocks produces two adjacent identical
// ciphertext blocks once the probe starts on a block boundary. Prepending k
// extra filler bytes for k = 0..blockSize-1 and watching for the first
// duplicate pair at ciphertext offset i gives the prefix length i - k.
//
// A prefix that itself ends in filler bytes shifts the apparent boundary, so
// the result is verified with a probe of a different byte at the computed
// alignment; disagreement returns ErrPrefixAmbiguous.
func ResolvePrefixLength(o EncryptOracle, blockSize int) (int, error) {
	var c counter
	prefixLen := -1
	for k := 0; k < blockSize; k++ {
		ct, err := c.query(o, bytes.Repeat(fillerA, 2*blockSize+k))
		if err != nil {
			return 0, err
		}
		if i := duplicateWindow(ct, blockSize); i >= 0 {
			prefixLen = i - k
			break
		}
	}
	if prefixLen < 0 {
		return 0, ErrPrefixAmbiguous
	}

	// Re-run the aligned probe with 'X' filler. The duplicate pair must
	// appear exactly at the first block boundary past the prefix; anywhere
	// else means the prefix ends in bytes that masqueraded as filler.
	gap := alignGap(prefixLen, blockSize)
	ct, err := c.query(o, bytes.Repeat([]byte{'X'}, 2*blockSize+gap))
	if err != nil {
		return 0, err
	}
	if duplicateWindow(ct, blockSize) != prefixLen+gap {
		return 0, ErrPrefixAmbiguous
	}
	return prefixLen, nil
}

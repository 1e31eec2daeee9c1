package attack

import "fmt"

// Forge mutates CBC ciphertext so that the plaintext bytes at offset become
// desired instead of original, without knowledge of the key. CBC decryption
// computes P[n] = Dec(C[n]) XOR C[n-1], so XORing original^desired into the
// preceding ciphertext block flips exactly the targeted plaintext bytes.
// The preceding block's own plaintext decrypts to garbage afterwards; that
// is inherent to the attack.
//
// ciphertext may carry the IV as its first block, which makes the first
// payload block attackable through the IV bytes. offset is the plaintext
// position relative to the start of ciphertext; it must lie at least one
// block in, and original must stay within a single block. The input is left
// unmodified.
func Forge(ciphertext []byte, blockSize, offset int, original, desired []byte) ([]byte, error) {
	if len(original) != len(desired) {
		return nil, fmt.Errorf("original and desired differ in length: %d != %d", len(original), len(desired))
	}
	if offset < blockSize {
		return nil, fmt.Errorf("offset %d is in the first block; no preceding block to corrupt", offset)
	}
	if offset%blockSize+len(original) > blockSize {
		return nil, fmt.Errorf("target range [%d, %d) crosses a block boundary", offset, offset+len(original))
	}
	if offset+len(original) > len(ciphertext) {
		return nil, fmt.Errorf("target range [%d, %d) is past the ciphertext end %d", offset, offset+len(original), len(ciphertext))
	}

	forged := make([]byte, len(ciphertext))
	copy(forged, ciphertext)
	delta := xor(original, desired)
	prev := forged[offset-blockSize:]
	for i, d := range delta {
		prev[i] ^= d
	}
	return forged, nil
}

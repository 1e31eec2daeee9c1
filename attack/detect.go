package attack

import "bytes"

const (
	minBlockSize = 8
	maxBlockSize = 128
)

// fillerA is the probe filler byte. The prefix resolver verifies with a
// different byte to catch prefixes that themselves end in fillerA.
var fillerA = []byte{'A'}

// Detect determines the oracle's block size and mode from ciphertext alone.
// For each candidate size it submits three blocks of identical filler and
// scans the ciphertext for two adjacent identical windows; the first
// candidate that produces a repeat is the block size, and the repeat itself
// certifies ECB, since CBC chaining keeps equal plaintext blocks from
// encrypting equal. If no candidate up to 128 repeats, Detect returns
// ErrModeDetection: the oracle is chained (CBC) or has an unusual block
// size.
func Detect(o EncryptOracle) (blockSize int, mode Mode, err error) {
	var c counter
	for size := minBlockSize; size <= maxBlockSize; size++ {
		ct, err := c.query(o, bytes.Repeat(fillerA, 3*size))
		if err != nil {
			return 0, 0, err
		}
		if duplicateWindow(ct, size) >= 0 {
			return size, ModeECB, nil
		}
	}
	return 0, 0, ErrModeDetection
}

// DetectBlockSize discovers the block size from ciphertext length growth:
// the ciphertext length jumps by exactly one block when the padded input
// crosses a block boundary. Unlike Detect, this works for CBC oracles too.
func DetectBlockSize(o EncryptOracle) (int, error) {
	var c counter
	base, err := c.query(o, nil)
	if err != nil {
		return 0, err
	}
	for i := 1; i <= maxBlockSize; i++ {
		ct, err := c.query(o, bytes.Repeat(fillerA, i))
		if err != nil {
			return 0, err
		}
		if len(ct) > len(base) {
			return len(ct) - len(base), nil
		}
	}
	return 0, ErrModeDetection
}

// DetectMode reports whether an oracle with a known block size is running
// ECB or CBC, by checking a three-block filler probe for adjacent duplicate
// ciphertext blocks.
func DetectMode(o EncryptOracle, blockSize int) Mode {
	ct := o(bytes.Repeat(fillerA, 3*blockSize))
	if duplicateWindow(ct, blockSize) >= 0 {
		return ModeECB
	}
	return ModeCBC
}

// duplicateWindow returns the offset of the first pair of adjacent
// identical size-byte windows in ct, or -1. Windows are scanned at every
// multiple of size, so only block-aligned repeats count.
func duplicateWindow(ct []byte, size int) int {
	for i := 0; i+2*size <= len(ct); i += size {
		if bytes.Equal(ct[i:i+size], ct[i+size:i+2*size]) {
			return i
		}
	}
	return -1
}

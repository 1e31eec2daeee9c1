// Package attack implements chosen-plaintext and padding-oracle attacks
// against block ciphers in ECB and CBC mode. Every attack operates purely
// through an oracle: a black box that encrypts attacker-supplied input, or
// reports padding validity, under a key the attacker never learns.
package attack

import (
	"errors"
	"fmt"
)

// An EncryptOracle encrypts attacker-controlled input under a fixed key and
// mode. The oracle may surround the input with a fixed prefix and suffix.
// For a fixed oracle instance, identical inputs must produce identical
// ciphertext; CBC oracles that draw a fresh IV per call do not satisfy this
// and resist every attack here except mode detection.
type EncryptOracle func(input []byte) []byte

// A PaddingOracle decrypts iv||ciphertext under a fixed key in CBC mode and
// reports only whether the result carries valid PKCS#7 padding.
type PaddingOracle func(data []byte) bool

// Mode identifies a block cipher mode of operation.
type Mode int

const (
	ModeECB Mode = iota
	ModeCBC
)

func (m Mode) String() string {
	switch m {
	case ModeECB:
		return "ECB"
	case ModeCBC:
		return "CBC"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

var (
	// ErrModeDetection means no probe produced repeated ciphertext blocks:
	// the oracle is not ECB-structured, or its block size is outside the
	// searched range.
	ErrModeDetection = errors.New("mode detection failed")

	// ErrPrefixAmbiguous means the resolved prefix length failed its
	// verification query; the unknown prefix likely ends in bytes equal to
	// the filler.
	ErrPrefixAmbiguous = errors.New("prefix length ambiguous")

	// ErrInconsistentOracle means the oracle stopped matching candidates
	// before the expected secret length was reached, violating the
	// fixed-key, fixed-suffix contract.
	ErrInconsistentOracle = errors.New("inconsistent oracle")

	// ErrPaddingOracle means no candidate byte produced valid padding at
	// some position: the oracle violated its contract or the caller's block
	// boundaries are wrong.
	ErrPaddingOracle = errors.New("padding oracle inconsistent")

	// ErrQueryBudget means an attack exceeded its query budget without
	// converging.
	ErrQueryBudget = errors.New("query budget exceeded")
)

// queryBudget bounds the total oracle calls of a single attack run. All
// search loops here are finite, so this only trips on an oracle that keeps
// invalidating results (for example, one that changes its suffix between
// calls). A variable so tests can shrink it.
var queryBudget = 1 << 22

// counter tracks oracle queries against the budget.
type counter struct {
	n int
}

func (c *counter) query(o EncryptOracle, input []byte) ([]byte, error) {
	if c.n >= queryBudget {
		return nil, ErrQueryBudget
	}
	c.n++
	return o(input), nil
}

func (c *counter) check(o PaddingOracle, data []byte) (bool, error) {
	if c.n >= queryBudget {
		return false, ErrQueryBudget
	}
	c.n++
	return o(data), nil
}

// xor writes x ^ y into a new buffer. x and y must have equal length.
func xor(x, y []byte) []byte {
	if len(x) != len(y) {
		panic(fmt.Sprintf("buffers have different length: len(x) = %d, len(y) = %d", len(x), len(y)))
	}
	buf := make([]byte, len(x))
	for i := range x {
		buf[i] = x[i] ^ y[i]
	}
	return buf
}

// alignGap returns the filler count that rounds prefixLen up to a block
// boundary. A block-aligned prefix needs no filler.
func alignGap(prefixLen, blockSize int) int {
	if prefixLen%blockSize == 0 {
		return 0
	}
	return blockSize - prefixLen%blockSize
}

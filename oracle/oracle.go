// Package oracle builds the encryption and padding oracles the attack
// package is pointed at: black boxes that capture a key, mode, and any
// fixed prefix or secret at construction and expose only an encrypt or
// padding-validity call. It exists for tests and demo drivers; nothing in
// it is available to the attacker beyond the returned function.
package oracle

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/andreburgaud/crypt2go/padding"
)

// RandomKey returns a fresh 16-byte AES key.
func RandomKey() []byte {
	return RandomBytes(aes.BlockSize)
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("oracle: reading random bytes: %v", err))
	}
	return buf
}

// RandomCipher returns an AES cipher under a random key.
func RandomCipher() cipher.Block {
	b, err := aes.NewCipher(RandomKey())
	if err != nil {
		panic(err)
	}
	return b
}

// Pad appends PKCS#7 padding up to a multiple of blockSize.
func Pad(data []byte, blockSize int) []byte {
	out, err := padding.NewPkcs7Padding(blockSize).Pad(data)
	if err != nil {
		panic(fmt.Sprintf("oracle: padding: %v", err))
	}
	return out
}

// Unpad strips PKCS#7 padding, rejecting invalid, empty, or misaligned
// input.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("oracle: length %d is not a positive multiple of the block size %d", len(data), blockSize)
	}
	return padding.NewPkcs7Padding(blockSize).Unpad(data)
}

// ValidPad reports whether data carries valid PKCS#7 padding.
func ValidPad(data []byte, blockSize int) bool {
	_, err := Unpad(data, blockSize)
	return err == nil
}

package oracle

import (
	"bytes"
	"crypto/cipher"
	"strings"
)

const (
	userDataHead = "comment1=cooking%20MCs;userdata="
	userDataTail = ";comment2=%20like%20a%20pound%20of%20bacon"
)

// NewUserData returns the classic bit-flipping target pair: encrypt wraps
// attacker text in a key/value string, quoting out ';' and '=' so the admin
// flag cannot simply be typed in, and encrypts it in CBC mode; isAdmin
// decrypts a ciphertext and reports whether an ";admin=true" pair survived.
// Both closures share one key and IV. Ciphertexts are returned as iv || ct
// so the first payload block stays forgeable.
func NewUserData(b cipher.Block) (encrypt func(text string) []byte, isAdmin func(data []byte) bool) {
	bs := b.BlockSize()
	iv := RandomBytes(bs)

	encrypt = func(text string) []byte {
		text = strings.ReplaceAll(text, "=", "%3D")
		text = strings.ReplaceAll(text, ";", "%3B")
		pt := Pad([]byte(userDataHead+text+userDataTail), bs)
		cipher.NewCBCEncrypter(b, iv).CryptBlocks(pt, pt)
		return append(append([]byte{}, iv...), pt...)
	}

	isAdmin = func(data []byte) bool {
		if len(data) < 2*bs || len(data)%bs != 0 {
			return false
		}
		pt := make([]byte, len(data)-bs)
		cipher.NewCBCDecrypter(b, data[:bs]).CryptBlocks(pt, data[bs:])
		if unpadded, err := Unpad(pt, bs); err == nil {
			pt = unpadded
		}
		for _, pair := range bytes.Split(pt, []byte(";")) {
			if bytes.Equal(pair, []byte("admin=true")) {
				return true
			}
		}
		return false
	}
	return encrypt, isAdmin
}

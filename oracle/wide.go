package oracle

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// wideCipher is a deterministic 32-byte block cipher built on AES: a CBC
// pass over the block, a byte reversal, and a second CBC pass. The reversal
// between the passes makes every output byte depend on every input byte, so
// 8- and 16-byte windows of the ciphertext never repeat, while the whole
// construction stays a fixed permutation of 32-byte blocks. It exists to
// exercise attacks at a block size AES cannot provide directly.
type wideCipher struct {
	b cipher.Block
}

// WideCipher returns a 32-byte cipher.Block keyed by a 16-byte AES key.
func WideCipher(key []byte) cipher.Block {
	b, err := aes.NewCipher(key)
	if err != nil {
		panic(fmt.Sprintf("oracle: wide cipher key: %v", err))
	}
	return wideCipher{b: b}
}

func (w wideCipher) BlockSize() int { return 2 * aes.BlockSize }

func (w wideCipher) Encrypt(dst, src []byte) {
	bs := w.BlockSize()
	tmp := make([]byte, bs)
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCEncrypter(w.b, iv).CryptBlocks(tmp, src[:bs])
	reverse(tmp)
	cipher.NewCBCEncrypter(w.b, iv).CryptBlocks(dst[:bs], tmp)
}

func (w wideCipher) Decrypt(dst, src []byte) {
	bs := w.BlockSize()
	tmp := make([]byte, bs)
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(w.b, iv).CryptBlocks(tmp, src[:bs])
	reverse(tmp)
	cipher.NewCBCDecrypter(w.b, iv).CryptBlocks(dst[:bs], tmp)
}

func reverse(buf []byte) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

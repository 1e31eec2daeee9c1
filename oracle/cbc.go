package oracle

import (
	"crypto/cipher"
	weak "math/rand"

	"github.com/pvdmeulen/blockoracle/attack"
)

// NewCBCAffix returns an oracle computing Enc(prefix || input || secret) in
// CBC mode under a fresh random IV per call. The IV is not revealed; the
// oracle exists as the chained counterpart to NewECBAffix.
func NewCBCAffix(b cipher.Block, prefix, secret []byte) attack.EncryptOracle {
	bs := b.BlockSize()
	return func(input []byte) []byte {
		pt := make([]byte, 0, len(prefix)+len(input)+len(secret)+bs)
		pt = append(pt, prefix...)
		pt = append(pt, input...)
		pt = append(pt, secret...)
		ct := Pad(pt, bs)
		cipher.NewCBCEncrypter(b, RandomBytes(bs)).CryptBlocks(ct, ct)
		return ct
	}
}

// NewCBCJunk returns a CBC oracle that draws a fresh IV and surrounds the
// input with 5 to 10 random junk bytes on each side, per call. It is the
// negative control for mode detection: no attacker input can force a
// repeated ciphertext block.
func NewCBCJunk(b cipher.Block) attack.EncryptOracle {
	bs := b.BlockSize()
	return func(input []byte) []byte {
		head := RandomBytes(5 + weak.Intn(6))
		tail := RandomBytes(5 + weak.Intn(6))
		pt := make([]byte, 0, len(head)+len(input)+len(tail)+bs)
		pt = append(pt, head...)
		pt = append(pt, input...)
		pt = append(pt, tail...)
		ct := Pad(pt, bs)
		cipher.NewCBCEncrypter(b, RandomBytes(bs)).CryptBlocks(ct, ct)
		return ct
	}
}

// EncryptCBC pads pt, encrypts it under a random IV, and returns iv || ct,
// the shape a padding oracle consumes. pt is left untouched.
func EncryptCBC(b cipher.Block, pt []byte) []byte {
	bs := b.BlockSize()
	iv := RandomBytes(bs)
	// Pad appends in place when pt has spare capacity; encrypt a copy so
	// the caller's buffer survives the in-place CryptBlocks.
	ct := Pad(append(make([]byte, 0, len(pt)+bs), pt...), bs)
	cipher.NewCBCEncrypter(b, iv).CryptBlocks(ct, ct)
	return append(iv, ct...)
}

// NewPaddingOracle returns an oracle that decrypts iv || ct in CBC mode and
// reports only whether the plaintext carries valid PKCS#7 padding.
func NewPaddingOracle(b cipher.Block) attack.PaddingOracle {
	bs := b.BlockSize()
	return func(data []byte) bool {
		if len(data) < 2*bs || len(data)%bs != 0 {
			return false
		}
		iv, ct := data[:bs], data[bs:]
		pt := make([]byte, len(ct))
		cipher.NewCBCDecrypter(b, iv).CryptBlocks(pt, ct)
		return ValidPad(pt, bs)
	}
}

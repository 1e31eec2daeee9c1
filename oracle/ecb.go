package oracle

import (
	"crypto/cipher"

	"github.com/andreburgaud/crypt2go/ecb"

	"github.com/pvdmeulen/blockoracle/attack"
)

// NewECBAffix returns an oracle computing Enc(prefix || input || secret)
// in ECB mode with PKCS#7 padding. prefix and secret are captured at
// construction and never change; either may be empty.
func NewECBAffix(b cipher.Block, prefix, secret []byte) attack.EncryptOracle {
	mode := ecb.NewECBEncrypter(b)
	bs := mode.BlockSize()
	return func(input []byte) []byte {
		pt := make([]byte, 0, len(prefix)+len(input)+len(secret)+bs)
		pt = append(pt, prefix...)
		pt = append(pt, input...)
		pt = append(pt, secret...)
		ct := Pad(pt, bs)
		mode.CryptBlocks(ct, ct)
		return ct
	}
}

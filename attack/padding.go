package attack

import (
	"fmt"

	"github.com/andreburgaud/crypt2go/padding"
)

// DecryptBlock recovers one plaintext block from a CBC ciphertext using only
// a padding oracle. prev is the ciphertext block (or IV) that precedes block
// in the original stream.
//
// The oracle reveals, for a chosen replacement Z of the preceding block,
// whether Dec(block) XOR Z ends in valid PKCS#7 padding. Working from the
// last byte backward, each pad value p pins the already-solved tail of Z so
// the tail decrypts to p, then brute-forces one more byte of Z until the
// oracle accepts; that byte XOR p is one byte of Dec(block). The plaintext
// is then Dec(block) XOR prev.
func DecryptBlock(prev, block []byte, o PaddingOracle) ([]byte, error) {
	bs := len(block)
	if len(prev) != bs {
		panic(fmt.Sprintf("blocks have different length: len(prev) = %d, len(block) = %d", len(prev), bs))
	}
	var c counter
	dec, err := decryptBlock(block, o, &c)
	if err != nil {
		return nil, err
	}
	return xor(dec, prev), nil
}

// Decrypt recovers the whole plaintext of a CBC ciphertext from a padding
// oracle, block 0 first, and strips the recovered PKCS#7 padding. A
// recovered final block without valid padding means the oracle lied at some
// point and yields ErrPaddingOracle.
func Decrypt(iv, ciphertext []byte, o PaddingOracle) ([]byte, error) {
	bs := len(iv)
	if bs == 0 || len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a positive multiple of the block size %d", len(ciphertext), bs)
	}
	var c counter
	pt := make([]byte, 0, len(ciphertext))
	prev := iv
	for i := 0; i+bs <= len(ciphertext); i += bs {
		block := ciphertext[i : i+bs]
		dec, err := decryptBlock(block, o, &c)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i/bs, err)
		}
		pt = append(pt, xor(dec, prev)...)
		prev = block
	}
	pt, err := padding.NewPkcs7Padding(bs).Unpad(pt)
	if err != nil {
		return nil, fmt.Errorf("%w: recovered plaintext has invalid padding", ErrPaddingOracle)
	}
	return pt, nil
}

// decryptBlock recovers Dec(block), the block cipher's raw decryption,
// byte by byte through the padding oracle.
func decryptBlock(block []byte, o PaddingOracle, c *counter) ([]byte, error) {
	bs := len(block)
	dec := make([]byte, bs)
	probe := make([]byte, 2*bs)
	copy(probe[bs:], block)
	z := probe[:bs]

	for p := 1; p <= bs; p++ {
		pos := bs - p
		// Pin the solved tail so it decrypts to the pad value p.
		for q := 1; q < p; q++ {
			z[bs-q] = dec[bs-q] ^ byte(p)
		}
		found := false
		for b := 0; b < 256; b++ {
			z[pos] = byte(b)
			ok, err := c.check(o, probe)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if p == 1 && bs > 1 {
				// The oracle may have accepted a longer pad that the
				// block's genuine tail happens to complete (e.g.
				// \x02\x02). A length-1 pad survives a flip of the
				// second-to-last byte; a longer pad does not.
				z[bs-2] ^= 1
				still, err := c.check(o, probe)
				z[bs-2] ^= 1
				if err != nil {
					return nil, err
				}
				if !still {
					continue
				}
			}
			dec[pos] = byte(b) ^ byte(p)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: no candidate for pad value %d", ErrPaddingOracle, p)
		}
	}
	return dec, nil
}

package main

import (
	"bytes"
	"crypto/cipher"
	"testing"

	"github.com/pvdmeulen/blockoracle/attack"
	"github.com/pvdmeulen/blockoracle/oracle"
)

// Recover a short secret suffix from an ECB oracle and stay within the
// brute-force budget of one full candidate sweep per secret byte.
func TestExtractAdminSecret(t *testing.T) {
	t.Parallel()
	secret := []byte("admin")
	inner := oracle.NewECBAffix(oracle.RandomCipher(), nil, secret)
	queries := 0
	o := func(input []byte) []byte {
		queries++
		return inner(input)
	}

	got, err := attack.ExtractSecret(o, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("got %q; want %q", got, secret)
	}
	if max := 5 * 256; queries > max {
		t.Errorf("used %d oracle queries; want at most %d", queries, max)
	}
}

// The full chosen-plaintext pipeline against an oracle with a fixed random
// prefix: detect the block size and mode, resolve the prefix length, then
// pull the secret out byte by byte.
func TestExtractWithUnknownPrefix(t *testing.T) {
	t.Parallel()
	secret := []byte("Did you stop? No, I just drove by")
	prefix := bytes.Repeat([]byte{'j'}, 21)
	o := oracle.NewECBAffix(oracle.RandomCipher(), prefix, secret)

	blockSize, mode, err := attack.Detect(o)
	if err != nil {
		t.Fatal(err)
	}
	if blockSize != 16 || mode != attack.ModeECB {
		t.Fatalf("got block size %d, mode %v; want 16, ECB", blockSize, mode)
	}

	prefixLen, err := attack.ResolvePrefixLength(o, blockSize)
	if err != nil {
		t.Fatal(err)
	}
	if prefixLen != len(prefix) {
		t.Fatalf("got prefix length %d; want %d", prefixLen, len(prefix))
	}

	got, err := attack.ExtractSecret(o, blockSize, prefixLen)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("got %q; want %q", got, secret)
	}
}

// Turn a block of filler into YELLOW SUBMARINE by flipping IV bits, leaving
// the rest of the message untouched.
func TestForgeYellowSubmarine(t *testing.T) {
	t.Parallel()
	b := oracle.RandomCipher()
	buf := oracle.EncryptCBC(b, []byte("AAAAAAAAAAAAAAAA"))

	forged, err := attack.Forge(buf, 16, 16, []byte("AAAAAAAAAAAAAAAA"), []byte("YELLOW SUBMARINE"))
	if err != nil {
		t.Fatal(err)
	}

	pt := make([]byte, len(forged)-16)
	cipher.NewCBCDecrypter(b, forged[:16]).CryptBlocks(pt, forged[16:])
	pt, err = oracle.Unpad(pt, 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte("YELLOW SUBMARINE"); !bytes.Equal(pt, want) {
		t.Errorf("got %q; want %q", pt, want)
	}
}

// Decrypt a CBC message end to end with nothing but padding validity.
func TestPaddingOracleRecovery(t *testing.T) {
	t.Parallel()
	plaintexts := [][]byte{
		[]byte("Cooking MC's like a pound of bacon"),
		[]byte("x"),
		[]byte("three blocks of plaintext, landing just shy of the end."),
	}
	for _, want := range plaintexts {
		b := oracle.RandomCipher()
		buf := oracle.EncryptCBC(b, want)
		o := oracle.NewPaddingOracle(b)

		got, err := attack.Decrypt(buf[:16], buf[16:], o)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got %q; want %q", got, want)
		}
	}
}

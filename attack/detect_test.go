package attack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blowfish"

	"github.com/pvdmeulen/blockoracle/attack"
	"github.com/pvdmeulen/blockoracle/oracle"
)

func blowfishCipher(t *testing.T) *blowfish.Cipher {
	t.Helper()
	b, err := blowfish.NewCipher(oracle.RandomKey())
	require.NoError(t, err)
	return b
}

func TestDetect(t *testing.T) {
	t.Parallel()
	secret := []byte("secret suffix, deliberately not block aligned")
	tests := []struct {
		name      string
		o         attack.EncryptOracle
		blockSize int
	}{
		{"blowfish8", oracle.NewECBAffix(blowfishCipher(t), nil, nil), 8},
		{"blowfish8 suffix", oracle.NewECBAffix(blowfishCipher(t), nil, secret), 8},
		{"aes16", oracle.NewECBAffix(oracle.RandomCipher(), nil, secret), 16},
		{"aes16 prefix", oracle.NewECBAffix(oracle.RandomCipher(), oracle.RandomBytes(23), secret), 16},
		{"wide32", oracle.NewECBAffix(oracle.WideCipher(oracle.RandomKey()), nil, secret), 32},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blockSize, mode, err := attack.Detect(test.o)
			require.NoError(t, err)
			assert.Equal(t, test.blockSize, blockSize)
			assert.Equal(t, attack.ModeECB, mode)
		})
	}
}

func TestDetectCBCNoFalsePositive(t *testing.T) {
	t.Parallel()
	o := oracle.NewCBCJunk(oracle.RandomCipher())
	for i := 0; i < 5; i++ {
		_, _, err := attack.Detect(o)
		require.ErrorIs(t, err, attack.ErrModeDetection)
	}
}

func TestDetectBlockSize(t *testing.T) {
	t.Parallel()
	secret := []byte("0123456789")
	tests := []struct {
		name      string
		o         attack.EncryptOracle
		blockSize int
	}{
		{"ecb", oracle.NewECBAffix(oracle.RandomCipher(), nil, secret), 16},
		{"ecb prefix", oracle.NewECBAffix(oracle.RandomCipher(), oracle.RandomBytes(9), secret), 16},
		{"cbc", oracle.NewCBCAffix(oracle.RandomCipher(), nil, secret), 16},
		{"blowfish", oracle.NewECBAffix(blowfishCipher(t), nil, secret), 8},
		{"wide", oracle.NewECBAffix(oracle.WideCipher(oracle.RandomKey()), nil, secret), 32},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blockSize, err := attack.DetectBlockSize(test.o)
			require.NoError(t, err)
			assert.Equal(t, test.blockSize, blockSize)
		})
	}
}

func TestDetectMode(t *testing.T) {
	t.Parallel()
	b := oracle.RandomCipher()
	assert.Equal(t, attack.ModeECB, attack.DetectMode(oracle.NewECBAffix(b, nil, nil), 16))
	assert.Equal(t, attack.ModeCBC, attack.DetectMode(oracle.NewCBCJunk(b), 16))
}

func TestModeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ECB", attack.ModeECB.String())
	assert.Equal(t, "CBC", attack.ModeCBC.String())
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyFromBase58(t *testing.T) {
	const wsol = "So11111111111111111111111111111111111111112"
	p, err := TryPubkeyFromBase58(wsol)
	require.NoError(t, err)
	assert.Equal(t, wsol, p.String())
	assert.False(t, p.IsZero())

	_, err = TryPubkeyFromBase58("tooshort")
	assert.Error(t, err)

	_, err = TryPubkeyFromBase58("0OIl") // 非法 base58 字符
	assert.Error(t, err)
}

func TestPubkeyFromBytes(t *testing.T) {
	b := make([]byte, 32)
	b[0] = 0xFF
	p, ok := PubkeyFromBytes(b)
	assert.True(t, ok)
	assert.Equal(t, byte(0xFF), p[0])

	_, ok = PubkeyFromBytes(make([]byte, 31))
	assert.False(t, ok)
}

func TestSignatureFromBytes(t *testing.T) {
	b := make([]byte, 64)
	b[63] = 0x7F
	s, ok := SignatureFromBytes(b)
	assert.True(t, ok)
	assert.Equal(t, byte(0x7F), s[63])
	assert.False(t, s.IsZero())

	_, ok = SignatureFromBytes(make([]byte, 63))
	assert.False(t, ok)

	var zero Signature
	assert.True(t, zero.IsZero())
}

func TestUint128FromLE(t *testing.T) {
	b := make([]byte, 16)
	b[0] = 1
	b[8] = 2
	u, ok := Uint128FromLE(b)
	require.True(t, ok)
	assert.Equal(t, Uint128{Lo: 1, Hi: 2}, u)
	assert.False(t, u.IsZero())

	_, ok = Uint128FromLE(b[:15])
	assert.False(t, ok)
}

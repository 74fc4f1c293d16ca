package token

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	data, err := hex.DecodeString("118a08c9d4cc46c576282e0daf050bbdb04f03313e35e5db3f3def69fa1eeec42b15a9cd4bef2cd809e464570d2a6cbd9bcc64e32ea4ebbcf748757bbb3dd5bd000084e2506ce67c000000000000000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	mint, err := base58.Decode("2BU1Xgyzqixhjaq9Pa5cNsaa1gSejLeNtDaDRv29qoZm")
	require.NoError(t, err)

	var a Account
	require.NoError(t, a.Unmarshal(data))
	assert.Equal(t, mint, []byte(a.Mint))
	assert.Equal(t, uint64(9e13*1e5), a.Amount)
	assert.Equal(t, AccountStateInitialized, a.State)
	assert.Empty(t, a.Delegate)
	assert.Empty(t, a.CloseAuthority)

	var rtt Account
	require.NoError(t, rtt.Unmarshal(a.Marshal()))
	assert.Equal(t, a, rtt)
}

func TestRoundTrip(t *testing.T) {
	isNative := uint64(2)
	expected := Account{
		Mint:           filledKey(1),
		Owner:          filledKey(2),
		Amount:         10,
		Delegate:       filledKey(3),
		State:          AccountStateFrozen,
		IsNative:       &isNative,
		CloseAuthority: filledKey(2),
	}

	var actual Account
	require.NoError(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected, actual)
}

func TestUnmarshal_Invalid(t *testing.T) {
	var a Account
	err := a.Unmarshal(make([]byte, AccountSize-1))
	assert.Equal(t, ErrInvalidTokenAccount, errors.Cause(err))

	err = a.Unmarshal(make([]byte, AccountSize))
	assert.Equal(t, ErrInvalidTokenAccount, errors.Cause(err))
}

func TestUnmarshal_IgnoresExtensions(t *testing.T) {
	expected := Account{
		Mint:   filledKey(4),
		Owner:  filledKey(5),
		Amount: 1,
		State:  AccountStateInitialized,
	}

	data := append(expected.Marshal(), 2, 0, 0, 0)

	var actual Account
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected, actual)
}

func filledKey(b byte) ed25519.PublicKey {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

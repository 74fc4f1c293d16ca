package solana

import (
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressCache_MatchesUncached(t *testing.T) {
	c := NewAddressCache(0)

	for i := 0; i < 20; i++ {
		program, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		mint, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		expected, expectedBump, err := FindProgramAddressAndBump(program, []byte("vault"), mint)
		require.NoError(t, err)

		for j := 0; j < 2; j++ {
			actual, bump, err := c.FindProgramAddressAndBump(program, []byte("vault"), mint)
			require.NoError(t, err)
			assert.EqualValues(t, expected, actual)
			assert.Equal(t, expectedBump, bump)
		}
	}

	assert.Equal(t, 20, c.Len())
}

func TestAddressCache_SeedBoundaries(t *testing.T) {
	c := NewAddressCache(0)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, _, err := c.FindProgramAddressAndBump(program, []byte("ab"), []byte("c"))
	require.NoError(t, err)
	b, _, err := c.FindProgramAddressAndBump(program, []byte("a"), []byte("bc"))
	require.NoError(t, err)

	// Concatenated seeds hash identically, but must still be cached separately
	assert.EqualValues(t, a, b)
	assert.Equal(t, 2, c.Len())
}

func TestAddressCache_ReturnsCopies(t *testing.T) {
	c := NewAddressCache(0)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	first, _, err := c.FindProgramAddressAndBump(program, []byte("stake"))
	require.NoError(t, err)
	expected := copyKey(first)

	first[0] ^= 0xff

	second, _, err := c.FindProgramAddressAndBump(program, []byte("stake"))
	require.NoError(t, err)
	assert.EqualValues(t, expected, second)
}

func TestAddressCache_Errors(t *testing.T) {
	c := NewAddressCache(0)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, _, err = c.FindProgramAddressAndBump(program, make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	assert.Equal(t, 0, c.Len())
}

func TestAddressCache_Nil(t *testing.T) {
	var c *AddressCache

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	expected, err := FindProgramAddress(program, []byte("vault"))
	require.NoError(t, err)

	actual, _, err := c.FindProgramAddressAndBump(program, []byte("vault"))
	require.NoError(t, err)
	assert.EqualValues(t, expected, actual)
	assert.Equal(t, 0, c.Len())
}

func TestAddressCache_Concurrent(t *testing.T) {
	c := NewAddressCache(4)

	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	expected, err := FindProgramAddress(program, []byte("claim_state"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			actual, _, err := c.FindProgramAddressAndBump(program, []byte("claim_state"))
			assert.NoError(t, err)
			assert.EqualValues(t, expected, actual)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

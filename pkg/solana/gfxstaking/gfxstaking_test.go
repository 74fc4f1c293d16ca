package gfxstaking

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStakingAccountAddress(t *testing.T) {
	wallet := make(ed25519.PublicKey, ed25519.PublicKeySize)
	for i := range wallet {
		wallet[i] = 0x02
	}

	address, bump, err := GetStakingAccountAddress(&GetStakingAccountAddressArgs{
		Wallet: wallet,
	})
	require.NoError(t, err)
	assert.Equal(t, "3RKxNNRUy7Scs31ka6CMKGnfJsuAFs9L7wRr8qZDWHEN", base58.Encode(address))
	assert.EqualValues(t, 253, bump)
}

func TestStakingAccount_Unmarshal(t *testing.T) {
	data := make([]byte, 96)
	for i := 0; i < stakedAmountOffset; i++ {
		data[i] = 0xff
	}
	binary.LittleEndian.PutUint64(data[stakedAmountOffset:], 25_000_000_000)

	var account StakingAccount
	require.NoError(t, account.Unmarshal(data))
	assert.EqualValues(t, 25_000_000_000, account.StakedAmount)

	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(data[:MinStakingAccountSize-1]))
}

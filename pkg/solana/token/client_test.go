package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

type fakeSolanaClient struct {
	solana.Client

	accounts map[string]solana.AccountInfo
	owned    []solana.KeyedAccountInfo
	filter   solana.TokenAccountsFilter
}

func (c *fakeSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	info, ok := c.accounts[string(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *fakeSolanaClient) GetTokenAccountsByOwner(_ ed25519.PublicKey, filter solana.TokenAccountsFilter) ([]solana.KeyedAccountInfo, error) {
	c.filter = filter
	return c.owned, nil
}

func TestClient_GetAccount(t *testing.T) {
	keys := generateKeys(t, 4)

	account := Account{Mint: keys[0], Owner: keys[1], Amount: 1, State: AccountStateInitialized}
	sc := &fakeSolanaClient{
		accounts: map[string]solana.AccountInfo{
			string(keys[2]): {Owner: ProgramKey, Data: account.Marshal()},
			string(keys[3]): {Owner: keys[0], Data: account.Marshal()},
		},
	}
	c := NewClient(sc)

	actual, err := c.GetAccount(keys[2], solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, account, *actual)

	_, err = c.GetAccount(keys[3], solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidTokenAccount, err)

	_, err = c.GetAccount(keys[1], solana.CommitmentConfirmed)
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestClient_GetAccountsByOwner(t *testing.T) {
	keys := generateKeys(t, 5)

	nft := Account{Mint: keys[0], Owner: keys[4], Amount: 1, State: AccountStateInitialized}
	fungible := Account{Mint: keys[1], Owner: keys[4], Amount: 1000, State: AccountStateInitialized}

	sc := &fakeSolanaClient{
		owned: []solana.KeyedAccountInfo{
			{PublicKey: keys[2], Account: solana.AccountInfo{Owner: ProgramKey, Data: nft.Marshal()}},
			{PublicKey: keys[3], Account: solana.AccountInfo{Owner: ProgramKey, Data: []byte{1, 2, 3}}},
			{PublicKey: keys[1], Account: solana.AccountInfo{Owner: ProgramKey, Data: fungible.Marshal()}},
		},
	}

	owned, err := NewClient(sc).GetAccountsByOwner(keys[4])
	require.NoError(t, err)
	require.Len(t, owned, 2)

	assert.EqualValues(t, keys[2], owned[0].Address)
	assert.Equal(t, nft, owned[0].Account)
	assert.EqualValues(t, keys[1], owned[1].Address)
	assert.Equal(t, fungible, owned[1].Account)

	assert.EqualValues(t, ProgramKey, sc.filter.ProgramID)
	assert.Empty(t, sc.filter.Mint)
}

package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

// ErrAccountNotFound indicates there is no account for the given address.
var ErrAccountNotFound = errors.New("account not found")

// OwnedAccount is a token account along with its address.
type OwnedAccount struct {
	Address ed25519.PublicKey
	Account Account
}

// Client provides utilities for accessing token accounts.
type Client struct {
	sc solana.Client
}

// NewClient creates a new Client.
func NewClient(sc solana.Client) *Client {
	return &Client{
		sc: sc,
	}
}

// GetAccount returns the token account info for the specified account.
//
// If the account is not initialized, or is not owned by the token program,
// then ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(accountID ed25519.PublicKey, commitment solana.Commitment) (*Account, error) {
	accountInfo, err := c.sc.GetAccountInfo(accountID, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	var account Account
	if err := account.Unmarshal(accountInfo.Data); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetAccountsByOwner returns every token account held by owner under the
// token program. Accounts that fail to decode are skipped.
func (c *Client) GetAccountsByOwner(owner ed25519.PublicKey) ([]*OwnedAccount, error) {
	keyed, err := c.sc.GetTokenAccountsByOwner(owner, solana.TokenAccountsFilter{ProgramID: ProgramKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token accounts by owner")
	}

	accounts := make([]*OwnedAccount, 0, len(keyed))
	for _, k := range keyed {
		owned := &OwnedAccount{Address: k.PublicKey}
		if err := owned.Account.Unmarshal(k.Account.Data); err != nil {
			continue
		}
		accounts = append(accounts, owned)
	}

	return accounts, nil
}

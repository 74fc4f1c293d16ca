package nestquest

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

var (
	VaultPrefix      = []byte("vault")
	StakePrefix      = []byte("stake")
	TombstonePrefix  = []byte("tombstone")
	ClaimStatePrefix = []byte("claim_state")
)

// Deriver derives the program's addresses, memoizing results when backed by
// an address cache. The zero value derives without caching.
type Deriver struct {
	cache *solana.AddressCache
}

func NewDeriver(cache *solana.AddressCache) *Deriver {
	return &Deriver{cache: cache}
}

var defaultDeriver = &Deriver{}

type GetVaultAddressArgs struct {
	Mint ed25519.PublicKey
}

// GetVaultAddress returns the token account that holds a staked NFT.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return defaultDeriver.GetVaultAddress(args)
}

func (d *Deriver) GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return d.find(VaultPrefix, args.Mint)
}

type GetStakeAddressArgs struct {
	Wallet ed25519.PublicKey
}

// GetStakeAddress returns the wallet's stake record. A wallet has at most one.
func GetStakeAddress(args *GetStakeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return defaultDeriver.GetStakeAddress(args)
}

func (d *Deriver) GetStakeAddress(args *GetStakeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return d.find(StakePrefix, args.Wallet)
}

type GetTombstoneAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetTombstoneAddress(args *GetTombstoneAddressArgs) (ed25519.PublicKey, uint8, error) {
	return defaultDeriver.GetTombstoneAddress(args)
}

func (d *Deriver) GetTombstoneAddress(args *GetTombstoneAddressArgs) (ed25519.PublicKey, uint8, error) {
	return d.find(TombstonePrefix, args.Mint)
}

type GetClaimStateAddressArgs struct {
	Tier3Nft ed25519.PublicKey
}

func GetClaimStateAddress(args *GetClaimStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return defaultDeriver.GetClaimStateAddress(args)
}

func (d *Deriver) GetClaimStateAddress(args *GetClaimStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return d.find(ClaimStatePrefix, args.Tier3Nft)
}

func (d *Deriver) find(seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	var cache *solana.AddressCache
	if d != nil {
		cache = d.cache
	}
	return cache.FindProgramAddressAndBump(PROGRAM_ID, seeds...)
}

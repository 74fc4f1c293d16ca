package nestquest

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mr-tron/base58"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

const (
	StakeAccountSize = (8 + // discriminator
		32 + // mint_id
		8) // staking_start
)

var StakeAccountDiscriminator = []byte{150, 197, 176, 29, 55, 132, 112, 149}

var stakeAccountLayout = binary.NewLayout(
	binary.Key("mint_id"),
	binary.Uint64("staking_start"),
)

// StakeAccount records which NFT a wallet has staked and when.
type StakeAccount struct {
	MintId       ed25519.PublicKey
	StakingStart uint64
}

func (obj *StakeAccount) Marshal() []byte {
	return encodeAccount(accountSchemas[AccountKindStake], binary.Record{
		"mint_id":       obj.MintId,
		"staking_start": obj.StakingStart,
	})
}

func (obj *StakeAccount) Unmarshal(data []byte) error {
	account, err := DecodeAccount(AccountKindStake, data)
	if err != nil {
		return err
	}

	obj.MintId = account.Fields["mint_id"].(ed25519.PublicKey)
	obj.StakingStart = account.Fields["staking_start"].(uint64)

	return nil
}

// StakedAt is the staking start as a unix timestamp in seconds.
func (obj *StakeAccount) StakedAt() time.Time {
	return time.Unix(int64(obj.StakingStart), 0)
}

func (obj *StakeAccount) String() string {
	return fmt.Sprintf(
		"StakeAccount{mint_id=%s,staking_start=%d}",
		base58.Encode(obj.MintId),
		obj.StakingStart,
	)
}

package gfxstaking

import (
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

const (
	// Offset of the staked amount. The bytes before it are the discriminator
	// followed by fields this package doesn't read.
	stakedAmountOffset = 56

	MinStakingAccountSize = stakedAmountOffset + 8
)

// StakingAccount is the part of a GFX staking account needed to check how
// much a wallet has staked.
type StakingAccount struct {
	StakedAmount uint64
}

func (obj *StakingAccount) Unmarshal(data []byte) error {
	if len(data) < MinStakingAccountSize {
		return ErrInvalidAccountData
	}

	offset := stakedAmountOffset
	binary.GetUint64(data[offset:], &obj.StakedAmount, &offset)

	return nil
}

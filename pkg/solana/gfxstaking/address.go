package gfxstaking

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

var StakingAccountPrefix = []byte("GFX-STAKINGACCOUNT")

type GetStakingAccountAddressArgs struct {
	Wallet ed25519.PublicKey
}

func GetStakingAccountAddress(args *GetStakingAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		StakingAccountPrefix,
		CONTROLLER_ID,
		args.Wallet,
	)
}

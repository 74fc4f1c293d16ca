package nestquest

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/system"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

var claimOrbInstructionIdentifier = []byte{
	230, 3, 49, 106, 78, 183, 48, 22,
}

type ClaimOrbInstructionArgs struct{}

type ClaimOrbInstructionAccounts struct {
	Payer         ed25519.PublicKey
	UserOrbAcct   ed25519.PublicKey
	AuthorityAcct ed25519.PublicKey
	ClaimState    ed25519.PublicKey
	OrbMint       ed25519.PublicKey
	Tier3Nft      ed25519.PublicKey
}

// NewClaimOrbInstruction mints an orb to the payer for a tier 3 NFT. The
// program inspects the instructions sysvar, so it is always passed.
func NewClaimOrbInstruction(
	accounts *ClaimOrbInstructionAccounts,
) solana.Instruction {
	return buildInstruction(
		instructionSchemas[InstructionTypeClaimOrb],
		nil,
		[]solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.UserOrbAcct,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuthorityAcct,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ClaimState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.OrbMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Tier3Nft,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  system.InstructionsSysVar,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  token.ProgramKey,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  system.ProgramKey,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	)
}

func ClaimOrbInstructionFromBinary(data []byte) (*ClaimOrbInstructionArgs, error) {
	if _, err := decodeInstructionArgs(instructionSchemas[InstructionTypeClaimOrb], data); err != nil {
		return nil, err
	}
	return &ClaimOrbInstructionArgs{}, nil
}

package nestquest

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/system"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

var initVaultInstructionIdentifier = []byte{
	77, 79, 85, 150, 33, 217, 52, 106,
}

type InitVaultInstructionArgs struct{}

type InitVaultInstructionAccounts struct {
	Payer     ed25519.PublicKey
	GofxVault ed25519.PublicKey
	GofxMint  ed25519.PublicKey
}

func NewInitVaultInstruction(
	accounts *InitVaultInstructionAccounts,
) solana.Instruction {
	return buildInstruction(
		instructionSchemas[InstructionTypeInitVault],
		nil,
		[]solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.GofxVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.GofxMint,
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
			{
				PublicKey:  system.RentSysVar,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	)
}

func InitVaultInstructionFromBinary(data []byte) (*InitVaultInstructionArgs, error) {
	if _, err := decodeInstructionArgs(instructionSchemas[InstructionTypeInitVault], data); err != nil {
		return nil, err
	}
	return &InitVaultInstructionArgs{}, nil
}

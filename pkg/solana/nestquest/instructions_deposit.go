package nestquest

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/system"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

var depositInstructionIdentifier = []byte{
	242, 35, 198, 137, 82, 225, 242, 182,
}

type DepositInstructionArgs struct{}

type DepositInstructionAccounts struct {
	Payer        ed25519.PublicKey
	Vault        ed25519.PublicKey
	TokenAccount ed25519.PublicKey
	Mint         ed25519.PublicKey
	Meta         ed25519.PublicKey
	Stake        ed25519.PublicKey
}

// NewDepositInstruction stakes the NFT held in TokenAccount, moving it into
// the mint's vault and recording it in the payer's stake account.
func NewDepositInstruction(
	accounts *DepositInstructionAccounts,
) solana.Instruction {
	return buildInstruction(
		instructionSchemas[InstructionTypeDeposit],
		nil,
		[]solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Meta,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Stake,
				IsWritable: true,
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

func DepositInstructionFromBinary(data []byte) (*DepositInstructionArgs, error) {
	if _, err := decodeInstructionArgs(instructionSchemas[InstructionTypeDeposit], data); err != nil {
		return nil, err
	}
	return &DepositInstructionArgs{}, nil
}

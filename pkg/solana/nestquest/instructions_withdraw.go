package nestquest

import (
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

var withdrawInstructionIdentifier = []byte{
	183, 18, 70, 156, 148, 109, 161, 34,
}

const (
	WithdrawInstructionArgsSize = (1 + // vault_bump
		1) // stake_bump
)

var withdrawInstructionArgsLayout = binary.NewLayout(
	binary.Uint8("vault_bump"),
	binary.Uint8("stake_bump"),
)

type WithdrawInstructionArgs struct {
	VaultBump uint8
	StakeBump uint8
}

// Accounts follow the staking revision of the program, which pays out GOFX
// rewards on withdrawal.
type WithdrawInstructionAccounts struct {
	Payer           ed25519.PublicKey
	Vault           ed25519.PublicKey
	TokenAccount    ed25519.PublicKey
	Stake           ed25519.PublicKey
	GofxVault       ed25519.PublicKey
	GofxUserAccount ed25519.PublicKey
	GofxMint        ed25519.PublicKey
}

func NewWithdrawInstruction(
	accounts *WithdrawInstructionAccounts,
	args *WithdrawInstructionArgs,
) solana.Instruction {
	return buildInstruction(
		instructionSchemas[InstructionTypeWithdraw],
		binary.Record{
			"vault_bump": args.VaultBump,
			"stake_bump": args.StakeBump,
		},
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
				PublicKey:  accounts.Stake,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.GofxVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.GofxUserAccount,
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
		},
	)
}

func WithdrawInstructionFromBinary(data []byte) (*WithdrawInstructionArgs, error) {
	decoded, err := decodeInstructionArgs(instructionSchemas[InstructionTypeWithdraw], data)
	if err != nil {
		return nil, err
	}

	return &WithdrawInstructionArgs{
		VaultBump: decoded["vault_bump"].(uint8),
		StakeBump: decoded["stake_bump"].(uint8),
	}, nil
}

package nestquest

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

// InstructionType is the closed set of operations the program accepts.
type InstructionType uint8

const (
	InstructionTypeUnknown InstructionType = iota
	InstructionTypeInitVault
	InstructionTypeDeposit
	InstructionTypeWithdraw
	InstructionTypeClaimOrb
)

type instructionSchema struct {
	name       string
	identifier []byte
	args       binary.Layout
}

var instructionSchemas = map[InstructionType]instructionSchema{
	InstructionTypeInitVault: {
		name:       "InitVault",
		identifier: initVaultInstructionIdentifier,
		args:       binary.NewLayout(),
	},
	InstructionTypeDeposit: {
		name:       "Deposit",
		identifier: depositInstructionIdentifier,
		args:       binary.NewLayout(),
	},
	InstructionTypeWithdraw: {
		name:       "Withdraw",
		identifier: withdrawInstructionIdentifier,
		args:       withdrawInstructionArgsLayout,
	},
	InstructionTypeClaimOrb: {
		name:       "ClaimOrb",
		identifier: claimOrbInstructionIdentifier,
		args:       binary.NewLayout(),
	},
}

func (t InstructionType) String() string {
	if schema, ok := instructionSchemas[t]; ok {
		return schema.name
	}
	return fmt.Sprintf("InstructionType(%d)", uint8(t))
}

// Identifier returns a copy of the 8 byte tag that prefixes instruction data
// for this operation, or nil for an unknown operation.
func (t InstructionType) Identifier() []byte {
	schema, ok := instructionSchemas[t]
	if !ok {
		return nil
	}
	return copyBytes(schema.identifier)
}

// ArgsLayout returns the layout of the arguments following the identifier.
func (t InstructionType) ArgsLayout() (binary.Layout, error) {
	schema, ok := instructionSchemas[t]
	if !ok {
		return binary.Layout{}, errors.Wrap(ErrUnknownInstructionType, t.String())
	}
	return schema.args, nil
}

// BuildInstruction encodes identifier || args for op and pairs it with the
// account roles exactly as supplied. Roles are neither reordered nor checked;
// their order is the program's calling convention and is the caller's
// responsibility. Prefer the typed NewXInstruction constructors.
func BuildInstruction(op InstructionType, args binary.Record, roles []solana.AccountMeta) (solana.Instruction, error) {
	schema, ok := instructionSchemas[op]
	if !ok {
		return solana.Instruction{}, errors.Wrap(ErrUnknownInstructionType, op.String())
	}
	return buildInstruction(schema, args, roles), nil
}

func buildInstruction(schema instructionSchema, args binary.Record, roles []solana.AccountMeta) solana.Instruction {
	data := make([]byte, 0, discriminatorSize+schema.args.Size())
	data = append(data, schema.identifier...)
	data = append(data, schema.args.Encode(args)...)

	accounts := make([]solana.AccountMeta, len(roles))
	copy(accounts, roles)

	return solana.Instruction{
		Program:  PROGRAM_ADDRESS,
		Data:     data,
		Accounts: accounts,
	}
}

// GetInstructionType identifies the operation encoded in instruction data.
func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) < discriminatorSize {
		return InstructionTypeUnknown, ErrInvalidInstructionData
	}

	for t, schema := range instructionSchemas {
		if bytes.Equal(data[:discriminatorSize], schema.identifier) {
			return t, nil
		}
	}

	return InstructionTypeUnknown, ErrUnknownInstructionType
}

// DecodeInstruction is the inverse of BuildInstruction. It checks the program
// id, resolves the operation and decodes its arguments.
func DecodeInstruction(ix solana.Instruction) (InstructionType, binary.Record, error) {
	if !bytes.Equal(ix.Program, PROGRAM_ID) {
		return InstructionTypeUnknown, nil, ErrInvalidProgram
	}

	t, err := GetInstructionType(ix.Data)
	if err != nil {
		return InstructionTypeUnknown, nil, err
	}

	args, err := decodeInstructionArgs(instructionSchemas[t], ix.Data)
	if err != nil {
		return InstructionTypeUnknown, nil, err
	}

	return t, args, nil
}

func decodeInstructionArgs(schema instructionSchema, data []byte) (binary.Record, error) {
	if len(data) < discriminatorSize+schema.args.Size() {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(data[:discriminatorSize], schema.identifier) {
		return nil, ErrInvalidInstructionData
	}

	args, err := schema.args.Decode(data[discriminatorSize:])
	if err != nil {
		return nil, ErrInvalidInstructionData
	}
	return args, nil
}

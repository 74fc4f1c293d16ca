package compute_budget

import (
	"bytes"
	"crypto/ed25519"
	"errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

var ErrInvalidInstruction = errors.New("invalid compute budget instruction")

const (
	commandRequestUnits uint8 = iota
	commandRequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

// SetComputeUnitLimit caps the compute units the transaction may consume.
func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	data := make([]byte, 1+4)

	var offset int
	binary.PutUint8(data, commandSetComputeUnitLimit, &offset)
	binary.PutUint32(data[offset:], computeUnitLimit, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

// SetComputeUnitPrice sets the priority fee, in micro-lamports per compute
// unit.
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	data := make([]byte, 1+8)

	var offset int
	binary.PutUint8(data, commandSetComputeUnitPrice, &offset)
	binary.PutUint64(data[offset:], microLamports, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

// Budget is what a set of compute budget instructions requests. Zero values
// mean the instruction was absent.
type Budget struct {
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
}

// Instructions returns the instructions requesting b, omitting unset values.
func (b Budget) Instructions() []solana.Instruction {
	var instructions []solana.Instruction
	if b.ComputeUnitLimit > 0 {
		instructions = append(instructions, SetComputeUnitLimit(b.ComputeUnitLimit))
	}
	if b.ComputeUnitPrice > 0 {
		instructions = append(instructions, SetComputeUnitPrice(b.ComputeUnitPrice))
	}
	return instructions
}

// Apply folds a compute budget instruction into b.
func (b *Budget) Apply(ix solana.Instruction) error {
	if !bytes.Equal(ix.Program, ProgramKey) || len(ix.Data) == 0 {
		return ErrInvalidInstruction
	}

	offset := 1
	switch ix.Data[0] {
	case commandSetComputeUnitLimit:
		if len(ix.Data) != 1+4 {
			return ErrInvalidInstruction
		}
		binary.GetUint32(ix.Data[offset:], &b.ComputeUnitLimit, &offset)
	case commandSetComputeUnitPrice:
		if len(ix.Data) != 1+8 {
			return ErrInvalidInstruction
		}
		binary.GetUint64(ix.Data[offset:], &b.ComputeUnitPrice, &offset)
	default:
		return ErrInvalidInstruction
	}

	return nil
}

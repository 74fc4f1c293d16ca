package nestquest

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

var (
	// ErrTruncatedInput is returned when a buffer is shorter than the
	// discriminator or the layout that follows it.
	ErrTruncatedInput = binary.ErrTruncatedInput

	ErrDiscriminatorMismatch  = errors.New("account discriminator mismatch")
	ErrOwnerMismatch          = errors.New("account not owned by program")
	ErrUnknownAccountKind     = errors.New("unknown account kind")
	ErrUnknownInstructionType = errors.New("unknown instruction type")
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("NQDKVecDDY3espZ7LynBrFSy8fTr8VrTrXQ7PRBMK1a")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

const discriminatorSize = 8

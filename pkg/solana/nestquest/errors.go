package nestquest

import (
	"fmt"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

// ProgramError is a custom error code returned by the program. The program
// is built on Anchor, so the framework's codes apply.
//
// Reference: https://github.com/coral-xyz/anchor/blob/master/lang/src/error.rs
type ProgramError uint32

const (
	ErrInstructionMissing            ProgramError = 100
	ErrInstructionFallbackNotFound   ProgramError = 101
	ErrInstructionDidNotDeserialize  ProgramError = 102
	ErrInstructionDidNotSerialize    ProgramError = 103
	ErrConstraintMut                 ProgramError = 2000
	ErrConstraintHasOne              ProgramError = 2001
	ErrConstraintSigner              ProgramError = 2002
	ErrConstraintRaw                 ProgramError = 2003
	ErrConstraintOwner               ProgramError = 2004
	ErrConstraintRentExempt          ProgramError = 2005
	ErrConstraintSeeds               ProgramError = 2006
	ErrConstraintTokenMint           ProgramError = 2014
	ErrConstraintTokenOwner          ProgramError = 2015
	ErrAccountDiscriminatorNotFound  ProgramError = 3001
	ErrAccountDiscriminatorMismatch  ProgramError = 3002
	ErrAccountDidNotDeserialize      ProgramError = 3003
	ErrAccountNotEnoughKeys          ProgramError = 3005
	ErrAccountNotMutable             ProgramError = 3006
	ErrAccountOwnedByWrongProgram    ProgramError = 3007
	ErrAccountNotSigner              ProgramError = 3010
	ErrAccountNotInitialized         ProgramError = 3012
)

var programErrorNames = map[ProgramError]string{
	ErrInstructionMissing:           "InstructionMissing",
	ErrInstructionFallbackNotFound:  "InstructionFallbackNotFound",
	ErrInstructionDidNotDeserialize: "InstructionDidNotDeserialize",
	ErrInstructionDidNotSerialize:   "InstructionDidNotSerialize",
	ErrConstraintMut:                "ConstraintMut",
	ErrConstraintHasOne:             "ConstraintHasOne",
	ErrConstraintSigner:             "ConstraintSigner",
	ErrConstraintRaw:                "ConstraintRaw",
	ErrConstraintOwner:              "ConstraintOwner",
	ErrConstraintRentExempt:         "ConstraintRentExempt",
	ErrConstraintSeeds:              "ConstraintSeeds",
	ErrConstraintTokenMint:          "ConstraintTokenMint",
	ErrConstraintTokenOwner:         "ConstraintTokenOwner",
	ErrAccountDiscriminatorNotFound: "AccountDiscriminatorNotFound",
	ErrAccountDiscriminatorMismatch: "AccountDiscriminatorMismatch",
	ErrAccountDidNotDeserialize:     "AccountDidNotDeserialize",
	ErrAccountNotEnoughKeys:         "AccountNotEnoughKeys",
	ErrAccountNotMutable:            "AccountNotMutable",
	ErrAccountOwnedByWrongProgram:   "AccountOwnedByWrongProgram",
	ErrAccountNotSigner:             "AccountNotSigner",
	ErrAccountNotInitialized:        "AccountNotInitialized",
}

func (e ProgramError) String() string {
	if name, ok := programErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ProgramError(%d)", uint32(e))
}

func (e ProgramError) Error() string {
	return fmt.Sprintf("program error %d: %s", uint32(e), e.String())
}

// GetProgramError extracts the program's custom error code from a failed
// transaction, if there is one.
func GetProgramError(err error) (ProgramError, bool) {
	code, ok := solana.CustomErrorCode(err)
	if !ok || code < 0 {
		return 0, false
	}
	return ProgramError(code), true
}

package memo

import (
	"bytes"
	"crypto/ed25519"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

// ProgramKey is the address of the SPL memo program (v2).
//
// Current key: MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr
var ProgramKey = ed25519.PublicKey{5, 74, 83, 90, 153, 41, 33, 6, 77, 36, 232, 113, 96, 218, 56, 124, 124, 53, 181, 221, 188, 146, 187, 129, 228, 31, 168, 64, 65, 5, 68, 141}

var (
	// The memo program rejects payloads that aren't valid UTF-8.
	ErrInvalidMemo = errors.New("memo must be valid utf-8")

	ErrIncorrectProgram = errors.New("incorrect program")
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/master/memo/program/src/processor.rs
func Instruction(data string) (solana.Instruction, error) {
	if !utf8.ValidString(data) {
		return solana.Instruction{}, ErrInvalidMemo
	}

	return solana.NewInstruction(
		ProgramKey,
		[]byte(data),
	), nil
}

// Parse returns the memo carried by ix.
func Parse(ix solana.Instruction) (string, error) {
	if !bytes.Equal(ix.Program, ProgramKey) {
		return "", ErrIncorrectProgram
	}
	if !utf8.Valid(ix.Data) {
		return "", ErrInvalidMemo
	}
	return string(ix.Data), nil
}

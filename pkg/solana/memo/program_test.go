package memo

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

func TestProgramKey(t *testing.T) {
	assert.Equal(t, "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr", base58.Encode(ProgramKey))
}

func TestInstruction(t *testing.T) {
	ix, err := Instruction("nestquest:stake")
	require.NoError(t, err)
	assert.Equal(t, ProgramKey, ix.Program)
	assert.Empty(t, ix.Accounts)
	assert.Equal(t, "nestquest:stake", string(ix.Data))

	parsed, err := Parse(ix)
	require.NoError(t, err)
	assert.Equal(t, "nestquest:stake", parsed)

	_, err = Instruction(string([]byte{0xff, 0xfe}))
	assert.Equal(t, ErrInvalidMemo, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(solana.Instruction{Program: make([]byte, 32), Data: []byte("memo")})
	assert.Equal(t, ErrIncorrectProgram, err)

	_, err = Parse(solana.Instruction{Program: ProgramKey, Data: []byte{0xff}})
	assert.Equal(t, ErrInvalidMemo, err)
}

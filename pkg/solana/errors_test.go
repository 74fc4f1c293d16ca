package solana

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[2,{"Custom":3}]}`))

	var raw interface{}
	assert.NoError(t, d.Decode(&raw))

	e, err := ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 2, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorCustom, e.InstructionError().ErrorKey())
	assert.NotNil(t, e.InstructionError().CustomError())
	assert.Equal(t, CustomError(3), *e.InstructionError().CustomError())

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[0,"InvalidArgument"]}`))
	assert.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorInstructionError, e.ErrorKey())
	assert.NotNil(t, e.InstructionError())
	assert.Equal(t, 0, e.InstructionError().Index)
	assert.Equal(t, InstructionErrorInvalidArgument, e.InstructionError().ErrorKey())

	d = json.NewDecoder(bytes.NewBufferString(`"DuplicateSignature"`))
	assert.NoError(t, d.Decode(&raw))

	e, err = ParseTransactionError(raw)
	assert.NoError(t, err)

	assert.Equal(t, TransactionErrorDuplicateSignature, e.ErrorKey())
	assert.Nil(t, e.InstructionError())
}

func TestNew(t *testing.T) {
	d := json.NewDecoder(bytes.NewBufferString(`"DuplicateSignature"`))
	var expected interface{}
	assert.NoError(t, d.Decode(&expected))

	e := NewTransactionError(TransactionErrorDuplicateSignature)
	assert.Equal(t, expected, e.raw)

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[0,"InvalidArgument"]}`))
	assert.NoError(t, d.Decode(&expected))
	e, err := TransactionErrorFromInstructionError(&InstructionError{
		Index: 0,
		Err:   errors.New(string(InstructionErrorInvalidArgument)),
	})
	assert.NoError(t, err)
	assert.Equal(t, expected, e.raw)

	d = json.NewDecoder(bytes.NewBufferString(`{"InstructionError":[2,{"Custom":3}]}`))
	assert.NoError(t, d.Decode(&expected))
	e, err = TransactionErrorFromInstructionError(&InstructionError{
		Index: 2,
		Err:   CustomError(3),
	})
	assert.NoError(t, err)
	assert.Equal(t, expected, e.raw)
}

func TestParseJSONNumber(t *testing.T) {
	tc := []interface{}{
		"1",
		1.0,
		json.Number("1"),
	}
	for i, c := range tc {
		v, err := parseJSONNumber(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, v, i)
	}
}

func TestIsTransactionError(t *testing.T) {
	err := NewTransactionError(TransactionErrorBlockhashNotFound)

	assert.True(t, IsTransactionError(err, TransactionErrorBlockhashNotFound))
	assert.True(t, IsTransactionError(errors.Wrap(err, "submit failed"), TransactionErrorBlockhashNotFound))
	assert.False(t, IsTransactionError(err, TransactionErrorDuplicateSignature))
	assert.False(t, IsTransactionError(errors.New("BlockhashNotFound"), TransactionErrorBlockhashNotFound))
	assert.False(t, IsTransactionError(nil, TransactionErrorBlockhashNotFound))
}

func TestCustomErrorCode(t *testing.T) {
	txErr, err := TransactionErrorFromInstructionError(&InstructionError{
		Index: 0,
		Err:   CustomError(3002),
	})
	assert.NoError(t, err)

	code, ok := CustomErrorCode(errors.Wrap(txErr, "deposit failed"))
	assert.True(t, ok)
	assert.Equal(t, 3002, code)

	txErr, err = TransactionErrorFromInstructionError(&InstructionError{
		Index: 1,
		Err:   errors.New(string(InstructionErrorInvalidSeeds)),
	})
	assert.NoError(t, err)

	_, ok = CustomErrorCode(txErr)
	assert.False(t, ok)

	_, ok = CustomErrorCode(NewTransactionError(TransactionErrorAccountInUse))
	assert.False(t, ok)
}

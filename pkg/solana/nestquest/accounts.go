package nestquest

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

// AccountKind is the closed set of account types owned by the program.
type AccountKind uint8

const (
	AccountKindUnknown AccountKind = iota
	AccountKindStake
	AccountKindClaimState
	AccountKindTombstone
)

type accountSchema struct {
	name          string
	discriminator []byte
	layout        binary.Layout
}

var accountSchemas = map[AccountKind]accountSchema{
	AccountKindStake: {
		name:          "Stake",
		discriminator: StakeAccountDiscriminator,
		layout:        stakeAccountLayout,
	},
	AccountKindClaimState: {
		name:          "ClaimState",
		discriminator: ClaimStateAccountDiscriminator,
		layout:        claimStateAccountLayout,
	},
	AccountKindTombstone: {
		name:          "Tombstone",
		discriminator: TombstoneAccountDiscriminator,
		layout:        tombstoneAccountLayout,
	},
}

func (k AccountKind) String() string {
	if schema, ok := accountSchemas[k]; ok {
		return schema.name
	}
	return fmt.Sprintf("AccountKind(%d)", uint8(k))
}

// Discriminator returns a copy of the 8 byte tag prefixed to accounts of
// this kind, or nil for an unknown kind.
func (k AccountKind) Discriminator() []byte {
	schema, ok := accountSchemas[k]
	if !ok {
		return nil
	}
	return copyBytes(schema.discriminator)
}

// Layout returns the field layout following the discriminator.
func (k AccountKind) Layout() (binary.Layout, error) {
	schema, ok := accountSchemas[k]
	if !ok {
		return binary.Layout{}, errors.Wrap(ErrUnknownAccountKind, k.String())
	}
	return schema.layout, nil
}

// Size is the full encoded account size, discriminator included.
func (k AccountKind) Size() int {
	schema, ok := accountSchemas[k]
	if !ok {
		return 0
	}
	return discriminatorSize + schema.layout.Size()
}

// Account is a decoded program account.
type Account struct {
	Kind   AccountKind
	Fields binary.Record
}

// DecodeAccount validates the discriminator for kind and decodes the payload
// that follows it. Data is assumed to be owned by the program.
func DecodeAccount(kind AccountKind, data []byte) (*Account, error) {
	schema, ok := accountSchemas[kind]
	if !ok {
		return nil, errors.Wrap(ErrUnknownAccountKind, kind.String())
	}

	if len(data) < discriminatorSize {
		return nil, errors.Wrapf(ErrTruncatedInput, "%s discriminator: have %d bytes", schema.name, len(data))
	}

	if !bytes.Equal(data[:discriminatorSize], schema.discriminator) {
		return nil, errors.Wrapf(ErrDiscriminatorMismatch, "expected %s", schema.name)
	}

	fields, err := schema.layout.Decode(data[discriminatorSize:])
	if err != nil {
		return nil, errors.Wrapf(err, "%s payload", schema.name)
	}

	return &Account{
		Kind:   kind,
		Fields: fields,
	}, nil
}

// DecodeOwnedAccount is DecodeAccount for data fetched alongside its owner,
// failing with ErrOwnerMismatch if the program doesn't own the account.
func DecodeOwnedAccount(kind AccountKind, owner ed25519.PublicKey, data []byte) (*Account, error) {
	if !bytes.Equal(owner, PROGRAM_ID) {
		return nil, ErrOwnerMismatch
	}
	return DecodeAccount(kind, data)
}

// EncodeAccount serializes fields prefixed with the discriminator for kind.
func EncodeAccount(kind AccountKind, fields binary.Record) ([]byte, error) {
	schema, ok := accountSchemas[kind]
	if !ok {
		return nil, errors.Wrap(ErrUnknownAccountKind, kind.String())
	}
	return encodeAccount(schema, fields), nil
}

func encodeAccount(schema accountSchema, fields binary.Record) []byte {
	data := make([]byte, 0, discriminatorSize+schema.layout.Size())
	data = append(data, schema.discriminator...)
	return append(data, schema.layout.Encode(fields)...)
}

// IdentifyAccount returns the kind whose discriminator prefixes data.
func IdentifyAccount(data []byte) (AccountKind, error) {
	if len(data) < discriminatorSize {
		return AccountKindUnknown, errors.Wrapf(ErrTruncatedInput, "have %d bytes", len(data))
	}

	for kind, schema := range accountSchemas {
		if bytes.Equal(data[:discriminatorSize], schema.discriminator) {
			return kind, nil
		}
	}

	return AccountKindUnknown, ErrDiscriminatorMismatch
}

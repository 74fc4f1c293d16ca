package nestquest

import (
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

const TombstoneAccountSize = 8 // discriminator

var TombstoneAccountDiscriminator = []byte{45, 187, 252, 155, 232, 114, 36, 22}

var tombstoneAccountLayout = binary.NewLayout()

// TombstoneAccount marks a mint that has been staked at least once. It has no
// fields; its existence is the record.
type TombstoneAccount struct{}

func (obj *TombstoneAccount) Marshal() []byte {
	return encodeAccount(accountSchemas[AccountKindTombstone], nil)
}

func (obj *TombstoneAccount) Unmarshal(data []byte) error {
	_, err := DecodeAccount(AccountKindTombstone, data)
	return err
}

func (obj *TombstoneAccount) String() string {
	return "TombstoneAccount{}"
}

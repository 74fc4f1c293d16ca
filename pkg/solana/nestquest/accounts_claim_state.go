package nestquest

import (
	"fmt"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana/binary"
)

const (
	ClaimStateAccountSize = (8 + // discriminator
		1) // orb_claimed
)

var ClaimStateAccountDiscriminator = []byte{71, 73, 19, 83, 53, 228, 242, 53}

var claimStateAccountLayout = binary.NewLayout(
	binary.Bool("orb_claimed"),
)

// ClaimStateAccount tracks whether a tier 3 NFT has claimed its orb.
type ClaimStateAccount struct {
	OrbClaimed bool
}

func (obj *ClaimStateAccount) Marshal() []byte {
	return encodeAccount(accountSchemas[AccountKindClaimState], binary.Record{
		"orb_claimed": obj.OrbClaimed,
	})
}

func (obj *ClaimStateAccount) Unmarshal(data []byte) error {
	account, err := DecodeAccount(AccountKindClaimState, data)
	if err != nil {
		return err
	}

	obj.OrbClaimed = account.Fields["orb_claimed"].(bool)

	return nil
}

func (obj *ClaimStateAccount) String() string {
	return fmt.Sprintf("ClaimStateAccount{orb_claimed=%t}", obj.OrbClaimed)
}

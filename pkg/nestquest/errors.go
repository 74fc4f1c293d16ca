package nestquest

import (
	"github.com/pkg/errors"
)

var (
	ErrNotConfigured  = errors.New("required config value not set")
	ErrAlreadyStaked  = errors.New("wallet already has an active stake")
	ErrNotStaked      = errors.New("mint is not staked by wallet")
	ErrOrbClaimed     = errors.New("orb already claimed for nft")
	ErrMetadataAbsent = errors.New("metadata account not found")

	// Tier 3 eligibility failures, in the order they're checked
	ErrInvalidSignature          = errors.New("invalid ownership signature")
	ErrNotNftOwner               = errors.New("wallet does not own nft")
	ErrGfxStakeNotFound          = errors.New("gfx staking account not found")
	ErrInsufficientStakeAmount   = errors.New("insufficient gfx staking amount")
	ErrInsufficientStakeDuration = errors.New("insufficient gfx staking length")
	ErrNoAccountHistory          = errors.New("no transaction history for account")
)

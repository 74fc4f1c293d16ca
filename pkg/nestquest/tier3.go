package nestquest

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GooseFX1/NestQuestWeb/pkg/metrics"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/gfxstaking"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/metadata"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

const (
	ownershipMessagePrefix = "NestQuest verify:\n"

	signaturePageSize = 1000
	maxSignaturePages = 100
)

// Tier3Eligibility summarizes a successful tier 3 upgrade check.
type Tier3Eligibility struct {
	Wallet       ed25519.PublicKey
	Mint         ed25519.PublicKey
	StakedAmount uint64
	StakingSince time.Time
	Metadata     *metadata.MetadataAccount
}

// OwnershipMessage is the message a wallet signs to prove it holds mint.
func OwnershipMessage(mint ed25519.PublicKey) []byte {
	return []byte(ownershipMessagePrefix + encode(mint))
}

// VerifyOwnershipMessage checks that hexSignature is wallet's signature over
// the ownership message for mint.
func (s *Service) VerifyOwnershipMessage(wallet, mint ed25519.PublicKey, hexSignature string) error {
	sig, err := hex.DecodeString(hexSignature)
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, "signature is not hex encoded")
	}
	if len(sig) != ed25519.SignatureSize {
		return errors.Wrapf(ErrInvalidSignature, "signature length %d", len(sig))
	}
	if len(wallet) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidSignature, "wallet length %d", len(wallet))
	}

	if !ed25519.Verify(wallet, OwnershipMessage(mint), sig) {
		return ErrInvalidSignature
	}
	return nil
}

// CheckTier3Eligibility runs the checks gating a tier 3 upgrade: the wallet
// signed the ownership message, holds the NFT, has at least the configured
// amount of GFX staked, and has been staking for at least the configured
// duration. The first failing check is returned as one of the Err* values.
func (s *Service) CheckTier3Eligibility(ctx context.Context, wallet, mint ed25519.PublicKey, hexSignature string) (result *Tier3Eligibility, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CheckTier3Eligibility")
	tracer.AddAttributes(map[string]interface{}{
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	log := s.log.WithFields(logrus.Fields{
		"method": "CheckTier3Eligibility",
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})

	if err := s.VerifyOwnershipMessage(wallet, mint, hexSignature); err != nil {
		log.WithError(err).Debug("ownership signature rejected")
		return nil, err
	}

	tokenAccount, err := token.GetAssociatedAccount(wallet, mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive nft token account")
	}

	balance, _, err := s.sc.GetTokenAccountBalance(tokenAccount)
	if errors.Is(err, solana.ErrNoBalance) {
		return nil, ErrNotNftOwner
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get nft balance")
	}
	if balance != 1 {
		log.WithField("balance", balance).Debug("wallet does not hold nft")
		return nil, ErrNotNftOwner
	}

	stakingAddress, _, err := gfxstaking.GetStakingAccountAddress(&gfxstaking.GetStakingAccountAddressArgs{
		Wallet: wallet,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive gfx staking address")
	}

	info, err := s.sc.GetAccountInfo(stakingAddress, solana.CommitmentConfirmed)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, ErrGfxStakeNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get gfx staking account")
	}

	var stakingAccount gfxstaking.StakingAccount
	if err := stakingAccount.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(err, "failed to decode gfx staking account")
	}

	minStake := s.conf.tier3MinGfxStake.Get(ctx)
	if stakingAccount.StakedAmount < minStake {
		log.WithFields(logrus.Fields{
			"staked_amount": stakingAccount.StakedAmount,
			"min_stake":     minStake,
		}).Debug("insufficient gfx stake")
		return nil, ErrInsufficientStakeAmount
	}

	stakingSince, err := s.getAccountCreationTime(stakingAddress)
	if err != nil {
		return nil, err
	}

	minDuration := s.conf.tier3MinStakeDuration.Get(ctx)
	if stakingSince.Add(minDuration).After(s.now()) {
		log.WithField("staking_since", stakingSince).Debug("gfx stake too recent")
		return nil, ErrInsufficientStakeDuration
	}

	md, err := s.fetchMetadata(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch nft metadata")
	}

	metrics.RecordEvent(ctx, "NestQuestTier3Eligible", map[string]interface{}{
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})

	return &Tier3Eligibility{
		Wallet:       wallet,
		Mint:         mint,
		StakedAmount: stakingAccount.StakedAmount,
		StakingSince: stakingSince,
		Metadata:     md,
	}, nil
}

// getAccountCreationTime approximates when address was created by the block
// time of its oldest transaction, paging back through its history.
func (s *Service) getAccountCreationTime(address ed25519.PublicKey) (time.Time, error) {
	var earliest *time.Time
	var before string

	for page := 0; page < maxSignaturePages; page++ {
		sigs, err := s.sc.GetSignaturesForAddress(address, solana.CommitmentFinalized, signaturePageSize, before, "")
		if err != nil {
			return time.Time{}, errors.Wrap(err, "failed to get signatures for address")
		}

		for _, sig := range sigs {
			if sig.BlockTime == nil {
				continue
			}
			if earliest == nil || sig.BlockTime.Before(*earliest) {
				blockTime := *sig.BlockTime
				earliest = &blockTime
			}
		}

		if len(sigs) < signaturePageSize {
			break
		}

		// Pages are newest first, so the last entry is where the next page starts
		oldest := sigs[len(sigs)-1].Signature
		before = encode(oldest[:])
	}

	if earliest == nil {
		return time.Time{}, ErrNoAccountHistory
	}
	return *earliest, nil
}

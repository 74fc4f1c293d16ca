package nestquest

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GooseFX1/NestQuestWeb/pkg/metrics"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	nestquest_program "github.com/GooseFX1/NestQuestWeb/pkg/solana/nestquest"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

// ClaimOrb mints the orb owed to the holder of a tier 3 NFT. The signer's orb
// token account is created if it doesn't exist yet.
func (s *Service) ClaimOrb(ctx context.Context, signer Signer, tier3Nft ed25519.PublicKey) (sig solana.Signature, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ClaimOrb")
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	wallet := signer.PublicKey()
	log := s.log.WithFields(logrus.Fields{
		"method":    "ClaimOrb",
		"wallet":    encode(wallet),
		"tier3_nft": encode(tier3Nft),
	})
	tracer.AddAttributes(map[string]interface{}{
		"wallet":    encode(wallet),
		"tier3_nft": encode(tier3Nft),
	})

	orbMint, err := requiredKey(ctx, s.conf.orbMint, OrbMintConfigEnvName)
	if err != nil {
		return sig, err
	}
	orbAuthority, err := requiredKey(ctx, s.conf.orbAuthority, OrbAuthorityConfigEnvName)
	if err != nil {
		return sig, err
	}

	claimStateAddress, _, err := s.deriver.GetClaimStateAddress(&nestquest_program.GetClaimStateAddressArgs{
		Tier3Nft: tier3Nft,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive claim state address")
	}

	data, ok, err := s.getProgramAccount(claimStateAddress)
	if err != nil {
		return sig, err
	} else if ok {
		var claimState nestquest_program.ClaimStateAccount
		if err := claimState.Unmarshal(data); err != nil {
			return sig, errors.Wrap(err, "failed to decode claim state account")
		}
		if claimState.OrbClaimed {
			return sig, ErrOrbClaimed
		}
	}

	createOrbAccount, userOrbAccount, err := token.CreateAssociatedTokenAccountIdempotent(wallet, wallet, orbMint)
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive orb token account")
	}

	ix := nestquest_program.NewClaimOrbInstruction(&nestquest_program.ClaimOrbInstructionAccounts{
		Payer:         wallet,
		UserOrbAcct:   userOrbAccount,
		AuthorityAcct: orbAuthority,
		ClaimState:    claimStateAddress,
		OrbMint:       orbMint,
		Tier3Nft:      tier3Nft,
	})

	sig, err = s.submit(ctx, log, signer, createOrbAccount, ix)
	if err != nil {
		return sig, err
	}

	metrics.RecordEvent(ctx, "NestQuestClaimOrb", map[string]interface{}{
		"wallet":    encode(wallet),
		"tier3_nft": encode(tier3Nft),
	})
	return sig, nil
}

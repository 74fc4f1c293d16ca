package nestquest

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/GooseFX1/NestQuestWeb/pkg/metrics"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/metadata"
)

// FetchOwned returns the mints of the NestQuest NFTs held by wallet, in token
// account order. A held token counts when its account has a balance of exactly
// one and its metadata names the configured update authority. Tokens whose
// metadata can't be loaded are skipped.
func (s *Service) FetchOwned(ctx context.Context, wallet ed25519.PublicKey) (mints []ed25519.PublicKey, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "FetchOwned")
	tracer.AddAttribute("wallet", encode(wallet))
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	log := s.log.WithFields(logrus.Fields{
		"method": "FetchOwned",
		"wallet": encode(wallet),
	})

	updateAuthority, err := requiredKey(ctx, s.conf.updateAuthority, UpdateAuthorityConfigEnvName)
	if err != nil {
		return nil, err
	}

	accounts, err := s.tokens.GetAccountsByOwner(wallet)
	if err != nil {
		return nil, err
	}

	var candidates []ed25519.PublicKey
	for _, account := range accounts {
		if account.Account.Amount == 1 {
			candidates = append(candidates, account.Account.Mint)
		}
	}

	matched := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentMetadataFetches)
	for i, mint := range candidates {
		i, mint := i, mint
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			md, err := s.fetchMetadata(mint)
			if err != nil {
				log.WithError(err).WithField("mint", encode(mint)).Debug("skipping token without metadata")
				return nil
			}

			matched[i] = bytes.Equal(md.UpdateAuthority, updateAuthority) && bytes.Equal(md.Mint, mint)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, mint := range candidates {
		if matched[i] {
			mints = append(mints, mint)
		}
	}

	metrics.RecordCount(ctx, "nestquest.owned_nfts", uint64(len(mints)))
	return mints, nil
}

func (s *Service) fetchMetadata(mint ed25519.PublicKey) (*metadata.MetadataAccount, error) {
	address, _, err := metadata.GetMetadataAddress(&metadata.GetMetadataAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive metadata address")
	}

	info, err := s.sc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, ErrMetadataAbsent
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get metadata account")
	}

	if !bytes.Equal(info.Owner, metadata.PROGRAM_ID) {
		return nil, errors.Wrapf(metadata.ErrInvalidAccountData, "owner %s", encode(info.Owner))
	}

	var md metadata.MetadataAccount
	if err := md.Unmarshal(info.Data); err != nil {
		return nil, err
	}
	return &md, nil
}

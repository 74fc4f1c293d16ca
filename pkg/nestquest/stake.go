package nestquest

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GooseFX1/NestQuestWeb/pkg/metrics"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/metadata"
	nestquest_program "github.com/GooseFX1/NestQuestWeb/pkg/solana/nestquest"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

// FetchStake returns the wallet's active stake. It returns nil when the wallet
// never staked, or when the NFT it recorded has since been withdrawn from the
// vault.
func (s *Service) FetchStake(ctx context.Context, wallet ed25519.PublicKey) (stake *nestquest_program.StakeAccount, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "FetchStake")
	tracer.AddAttribute("wallet", encode(wallet))
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	stakeAddress, _, err := s.deriver.GetStakeAddress(&nestquest_program.GetStakeAddressArgs{
		Wallet: wallet,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive stake address")
	}

	data, ok, err := s.getProgramAccount(stakeAddress)
	if err != nil || !ok {
		return nil, err
	}

	stake = &nestquest_program.StakeAccount{}
	if err := stake.Unmarshal(data); err != nil {
		return nil, errors.Wrap(err, "failed to decode stake account")
	}

	vaultAddress, _, err := s.deriver.GetVaultAddress(&nestquest_program.GetVaultAddressArgs{
		Mint: stake.MintId,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive vault address")
	}

	balance, _, err := s.sc.GetTokenAccountBalance(vaultAddress)
	if errors.Is(err, solana.ErrNoBalance) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get vault balance")
	}

	if balance == 0 {
		return nil, nil
	}
	return stake, nil
}

// HasBeenStaked reports whether mint has ever been staked, which the program
// records with a tombstone account.
func (s *Service) HasBeenStaked(ctx context.Context, mint ed25519.PublicKey) (staked bool, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "HasBeenStaked")
	tracer.AddAttribute("mint", encode(mint))
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	tombstoneAddress, _, err := s.deriver.GetTombstoneAddress(&nestquest_program.GetTombstoneAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to derive tombstone address")
	}

	data, ok, err := s.getProgramAccount(tombstoneAddress)
	if err != nil || !ok {
		return false, err
	}

	var tombstone nestquest_program.TombstoneAccount
	if err := tombstone.Unmarshal(data); err != nil {
		return false, errors.Wrap(err, "failed to decode tombstone account")
	}
	return true, nil
}

// Stake deposits the signer's NFT into its vault.
func (s *Service) Stake(ctx context.Context, signer Signer, mint ed25519.PublicKey) (sig solana.Signature, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Stake")
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	wallet := signer.PublicKey()
	log := s.log.WithFields(logrus.Fields{
		"method": "Stake",
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})
	tracer.AddAttributes(map[string]interface{}{
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})

	existing, err := s.FetchStake(ctx, wallet)
	if err != nil {
		return sig, err
	} else if existing != nil {
		log.WithField("staked_mint", encode(existing.MintId)).Debug("wallet already staking")
		return sig, ErrAlreadyStaked
	}

	vaultAddress, _, err := s.deriver.GetVaultAddress(&nestquest_program.GetVaultAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive vault address")
	}

	stakeAddress, _, err := s.deriver.GetStakeAddress(&nestquest_program.GetStakeAddressArgs{
		Wallet: wallet,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive stake address")
	}

	tokenAccount, err := token.GetAssociatedAccount(wallet, mint)
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive nft token account")
	}

	metadataAddress, _, err := metadata.GetMetadataAddress(&metadata.GetMetadataAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive metadata address")
	}

	ix := nestquest_program.NewDepositInstruction(&nestquest_program.DepositInstructionAccounts{
		Payer:        wallet,
		Vault:        vaultAddress,
		TokenAccount: tokenAccount,
		Mint:         mint,
		Meta:         metadataAddress,
		Stake:        stakeAddress,
	})

	sig, err = s.submit(ctx, log, signer, ix)
	if err != nil {
		return sig, err
	}

	metrics.RecordEvent(ctx, "NestQuestStake", map[string]interface{}{
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})
	return sig, nil
}

// Unstake withdraws the signer's staked NFT along with its GOFX rewards. The
// wallet's GOFX token account is created if it doesn't exist yet.
func (s *Service) Unstake(ctx context.Context, signer Signer, mint ed25519.PublicKey) (sig solana.Signature, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Unstake")
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	wallet := signer.PublicKey()
	log := s.log.WithFields(logrus.Fields{
		"method": "Unstake",
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})
	tracer.AddAttributes(map[string]interface{}{
		"wallet": encode(wallet),
		"mint":   encode(mint),
	})

	gofxVault, err := requiredKey(ctx, s.conf.gofxVault, GofxVaultConfigEnvName)
	if err != nil {
		return sig, err
	}
	gofxMint, err := requiredKey(ctx, s.conf.gofxMint, GofxMintConfigEnvName)
	if err != nil {
		return sig, err
	}

	stake, err := s.FetchStake(ctx, wallet)
	if err != nil {
		return sig, err
	} else if stake == nil || !bytes.Equal(stake.MintId, mint) {
		return sig, ErrNotStaked
	}

	vaultAddress, vaultBump, err := s.deriver.GetVaultAddress(&nestquest_program.GetVaultAddressArgs{
		Mint: mint,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive vault address")
	}

	stakeAddress, stakeBump, err := s.deriver.GetStakeAddress(&nestquest_program.GetStakeAddressArgs{
		Wallet: wallet,
	})
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive stake address")
	}

	tokenAccount, err := token.GetAssociatedAccount(wallet, mint)
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive nft token account")
	}

	createGofxAccount, gofxUserAccount, err := token.CreateAssociatedTokenAccountIdempotent(wallet, wallet, gofxMint)
	if err != nil {
		return sig, errors.Wrap(err, "failed to derive gofx token account")
	}

	ix := nestquest_program.NewWithdrawInstruction(
		&nestquest_program.WithdrawInstructionAccounts{
			Payer:           wallet,
			Vault:           vaultAddress,
			TokenAccount:    tokenAccount,
			Stake:           stakeAddress,
			GofxVault:       gofxVault,
			GofxUserAccount: gofxUserAccount,
			GofxMint:        gofxMint,
		},
		&nestquest_program.WithdrawInstructionArgs{
			VaultBump: vaultBump,
			StakeBump: stakeBump,
		},
	)

	sig, err = s.submit(ctx, log, signer, createGofxAccount, ix)
	if err != nil {
		return sig, err
	}

	metrics.RecordEvent(ctx, "NestQuestUnstake", map[string]interface{}{
		"wallet":        encode(wallet),
		"mint":          encode(mint),
		"staked_at":     stake.StakedAt().Unix(),
		"staked_period": s.now().Sub(stake.StakedAt()).String(),
	})
	return sig, nil
}

// getProgramAccount loads the data of an account owned by the program. Absent
// accounts are reported through ok rather than an error.
func (s *Service) getProgramAccount(address ed25519.PublicKey) (data []byte, ok bool, err error) {
	info, err := s.sc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(info.Owner, nestquest_program.PROGRAM_ID) {
		return nil, false, errors.Wrapf(nestquest_program.ErrOwnerMismatch, "owner %s", encode(info.Owner))
	}
	return info.Data, true, nil
}

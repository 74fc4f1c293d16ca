package nestquest

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GooseFX1/NestQuestWeb/pkg/retry"
	"github.com/GooseFX1/NestQuestWeb/pkg/retry/backoff"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	compute_budget "github.com/GooseFX1/NestQuestWeb/pkg/solana/computebudget"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/memo"
	nestquest_program "github.com/GooseFX1/NestQuestWeb/pkg/solana/nestquest"
)

const defaultBlockhashRetryDelay = 400 * time.Millisecond

// submit compiles the instructions into a transaction paid for by signer,
// signs it and submits it. Submissions rejected for an unknown blockhash are
// rebuilt and retried, up to the configured number of attempts.
//
// The configured compute budget is requested ahead of the instructions, and
// the configured memo, if any, is appended after them.
func (s *Service) submit(ctx context.Context, log *logrus.Entry, signer Signer, instructions ...solana.Instruction) (solana.Signature, error) {
	var sig solana.Signature

	instructions, err := s.withTransactionExtras(ctx, instructions)
	if err != nil {
		return sig, err
	}

	attempts, err := retry.Retry(
		func() error {
			blockhash, err := s.sc.GetLatestBlockhash()
			if err != nil {
				return errors.Wrap(err, "failed to get latest blockhash")
			}

			txn := solana.NewTransaction(signer.PublicKey(), instructions...)
			txn.SetBlockhash(blockhash)

			if err := signer.SignTransaction(ctx, &txn); err != nil {
				return errors.Wrap(err, "failed to sign transaction")
			}

			sig, err = s.sc.SubmitTransaction(txn, solana.CommitmentConfirmed)
			return err
		},
		retry.Context(ctx),
		retry.Limit(uint(s.conf.maxSubmitAttempts.Get(ctx))),
		retry.Matching(func(err error) bool {
			return solana.IsTransactionError(err, solana.TransactionErrorBlockhashNotFound)
		}),
		retry.Backoff(backoff.Constant(s.blockhashRetryDelay), s.blockhashRetryDelay),
	)

	log = log.WithField("attempts", attempts)
	if err != nil {
		if programErr, ok := nestquest_program.GetProgramError(err); ok {
			log.WithError(err).Warnf("transaction failed with program error %s", programErr.String())
			return sig, errors.Wrapf(err, "transaction failed with %s", programErr.String())
		}

		log.WithError(err).Warn("failure submitting transaction")
		return sig, errors.Wrap(err, "failed to submit transaction")
	}

	log.WithField("signature", encode(sig[:])).Debug("transaction submitted")
	return sig, nil
}

func (s *Service) withTransactionExtras(ctx context.Context, instructions []solana.Instruction) ([]solana.Instruction, error) {
	computeUnitLimit := s.conf.computeUnitLimit.Get(ctx)
	if computeUnitLimit > math.MaxUint32 {
		return nil, errors.Errorf("compute unit limit %d out of range", computeUnitLimit)
	}

	budget := compute_budget.Budget{
		ComputeUnitLimit: uint32(computeUnitLimit),
		ComputeUnitPrice: s.conf.computeUnitPrice.Get(ctx),
	}

	result := budget.Instructions()
	result = append(result, instructions...)

	if text := s.conf.transactionMemo.Get(ctx); len(text) > 0 {
		memoIx, err := memo.Instruction(text)
		if err != nil {
			return nil, errors.Wrap(err, "invalid transaction memo")
		}
		result = append(result, memoIx)
	}

	return result, nil
}

package nestquest

import (
	"context"
	"crypto/ed25519"

	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

// Signer authorizes transactions on behalf of a wallet. Implementations may
// sign locally or delegate to an external wallet.
type Signer interface {
	PublicKey() ed25519.PublicKey
	SignTransaction(ctx context.Context, txn *solana.Transaction) error
}

type keypairSigner struct {
	key ed25519.PrivateKey
}

// NewKeypairSigner returns a Signer backed by a local private key.
func NewKeypairSigner(key ed25519.PrivateKey) Signer {
	return &keypairSigner{key: key}
}

func (s *keypairSigner) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

func (s *keypairSigner) SignTransaction(_ context.Context, txn *solana.Transaction) error {
	return txn.Sign(s.key)
}

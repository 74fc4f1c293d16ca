package nestquest

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	xrate "golang.org/x/time/rate"

	"github.com/GooseFX1/NestQuestWeb/pkg/config"
	"github.com/GooseFX1/NestQuestWeb/pkg/rate"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
	nestquest_program "github.com/GooseFX1/NestQuestWeb/pkg/solana/nestquest"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana/token"
)

const (
	metricsStructName = "nestquest.service"

	// Upper bound on in flight metadata lookups per FetchOwned call
	maxConcurrentMetadataFetches = 16
)

// Service ties the NestQuest program codecs to a Solana RPC node. It reads
// stake state, builds and submits staking transactions, and checks tier 3
// upgrade eligibility.
type Service struct {
	log     *logrus.Entry
	conf    *conf
	sc      solana.Client
	tokens  *token.Client
	deriver *nestquest_program.Deriver

	blockhashRetryDelay time.Duration
	now                 func() time.Time
}

func NewService(sc solana.Client, configProvider ConfigProvider) *Service {
	conf := configProvider()

	var addressCache *solana.AddressCache
	if conf.enableAddressCache.Get(context.Background()) {
		addressCache = solana.NewAddressCache(solana.DefaultAddressCacheSize)
	}

	return &Service{
		log:     logrus.StandardLogger().WithField("type", "nestquest/service"),
		conf:    conf,
		sc:      sc,
		tokens:  token.NewClient(sc),
		deriver: nestquest_program.NewDeriver(addressCache),

		blockhashRetryDelay: defaultBlockhashRetryDelay,
		now:                 time.Now,
	}
}

// NewSolanaClient returns an RPC client for the configured endpoint, locally
// rate limited when a request budget is configured.
func NewSolanaClient(ctx context.Context, configProvider ConfigProvider) solana.Client {
	conf := configProvider()

	var limiter rate.Limiter = &rate.NoLimiter{}
	if rps := conf.rpcRequestsPerSecond.Get(ctx); rps > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(rps), int(rps))
	}

	return solana.NewWithLimiter(conf.rpcEndpoint.Get(ctx), nil, limiter)
}

// requiredKey reads a key that has no default.
func requiredKey(ctx context.Context, key config.PublicKey, envName string) (ed25519.PublicKey, error) {
	value, err := key.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", envName)
	}
	if len(value) == 0 {
		return nil, errors.Wrap(ErrNotConfigured, envName)
	}
	return value, nil
}

func encode(key []byte) string {
	return base58.Encode(key)
}

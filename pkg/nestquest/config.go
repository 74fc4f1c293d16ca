package nestquest

import (
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"

	"github.com/GooseFX1/NestQuestWeb/pkg/config"
	"github.com/GooseFX1/NestQuestWeb/pkg/config/env"
	"github.com/GooseFX1/NestQuestWeb/pkg/config/memory"
	"github.com/GooseFX1/NestQuestWeb/pkg/config/wrapper"
	"github.com/GooseFX1/NestQuestWeb/pkg/solana"
)

const (
	envConfigPrefix = "NESTQUEST_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = string(solana.EnvironmentProd)

	RpcRequestsPerSecondConfigEnvName = envConfigPrefix + "RPC_REQUESTS_PER_SECOND"
	defaultRpcRequestsPerSecond       = 0 // Unlimited

	UpdateAuthorityConfigEnvName = envConfigPrefix + "UPDATE_AUTHORITY"
	defaultUpdateAuthority       = "nestFGrTJ4QoRtvo8ZbASZZ2PSuv8AvvmaN1H31GhBQ"

	Tier3MinGfxStakeConfigEnvName = envConfigPrefix + "TIER3_MIN_GFX_STAKE"
	defaultTier3MinGfxStake       = 25_000_000_000

	Tier3MinStakeDurationConfigEnvName = envConfigPrefix + "TIER3_MIN_STAKE_DURATION"
	defaultTier3MinStakeDuration       = 7 * 24 * time.Hour

	EnableAddressCacheConfigEnvName = envConfigPrefix + "ENABLE_ADDRESS_CACHE"
	defaultEnableAddressCache       = true

	MaxSubmitAttemptsConfigEnvName = envConfigPrefix + "MAX_SUBMIT_ATTEMPTS"
	defaultMaxSubmitAttempts       = 3

	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0 // Micro-lamports. Unset omits the instruction

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 0

	TransactionMemoConfigEnvName = envConfigPrefix + "TRANSACTION_MEMO"
	defaultTransactionMemo       = ""

	GofxMintConfigEnvName = envConfigPrefix + "GOFX_MINT"
	defaultGofxMint       = "GFX1ZjR2P15tmrSwow6FjyDYcEkoFb4p4gJCpLBjaxHD"

	// No defaults for these. Operations needing them fail with ErrNotConfigured.
	GofxVaultConfigEnvName    = envConfigPrefix + "GOFX_VAULT"
	OrbMintConfigEnvName      = envConfigPrefix + "ORB_MINT"
	OrbAuthorityConfigEnvName = envConfigPrefix + "ORB_AUTHORITY"
)

type conf struct {
	rpcEndpoint           config.String
	rpcRequestsPerSecond  config.Uint64
	updateAuthority       config.PublicKey
	tier3MinGfxStake      config.Uint64
	tier3MinStakeDuration config.Duration
	enableAddressCache    config.Bool
	maxSubmitAttempts     config.Uint64
	computeUnitPrice      config.Uint64
	computeUnitLimit      config.Uint64
	transactionMemo       config.String
	gofxMint              config.PublicKey
	gofxVault             config.PublicKey
	orbMint               config.PublicKey
	orbAuthority          config.PublicKey
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:           env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			rpcRequestsPerSecond:  env.NewUint64Config(RpcRequestsPerSecondConfigEnvName, defaultRpcRequestsPerSecond),
			updateAuthority:       env.NewPublicKeyConfig(UpdateAuthorityConfigEnvName, mustDecodeKey(defaultUpdateAuthority)),
			tier3MinGfxStake:      env.NewUint64Config(Tier3MinGfxStakeConfigEnvName, defaultTier3MinGfxStake),
			tier3MinStakeDuration: env.NewDurationConfig(Tier3MinStakeDurationConfigEnvName, defaultTier3MinStakeDuration),
			enableAddressCache:    env.NewBoolConfig(EnableAddressCacheConfigEnvName, defaultEnableAddressCache),
			maxSubmitAttempts:     env.NewUint64Config(MaxSubmitAttemptsConfigEnvName, defaultMaxSubmitAttempts),
			computeUnitPrice:      env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
			computeUnitLimit:      env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			transactionMemo:       env.NewStringConfig(TransactionMemoConfigEnvName, defaultTransactionMemo),
			gofxMint:              env.NewPublicKeyConfig(GofxMintConfigEnvName, mustDecodeKey(defaultGofxMint)),
			gofxVault:             env.NewPublicKeyConfig(GofxVaultConfigEnvName, nil),
			orbMint:               env.NewPublicKeyConfig(OrbMintConfigEnvName, nil),
			orbAuthority:          env.NewPublicKeyConfig(OrbAuthorityConfigEnvName, nil),
		}
	}
}

type testOverrides struct {
	updateAuthority       ed25519.PublicKey
	tier3MinGfxStake      uint64
	tier3MinStakeDuration time.Duration
	disableAddressCache   bool
	maxSubmitAttempts     uint64
	computeUnitPrice      uint64
	computeUnitLimit      uint64
	transactionMemo       string
	gofxMint              ed25519.PublicKey
	gofxVault             ed25519.PublicKey
	orbMint               ed25519.PublicKey
	orbAuthority          ed25519.PublicKey
}

// Zero valued overrides fall back to the defaults. Nil keys are left unset.
func withManualTestConfigs(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:           wrapper.NewStringConfig(memory.NewConfig(nil), defaultRpcEndpoint),
			rpcRequestsPerSecond:  wrapper.NewUint64Config(memory.NewConfig(nil), defaultRpcRequestsPerSecond),
			updateAuthority:       wrapper.NewPublicKeyConfig(keyOverride(overrides.updateAuthority), mustDecodeKey(defaultUpdateAuthority)),
			tier3MinGfxStake:      wrapper.NewUint64Config(nonZeroOverride(overrides.tier3MinGfxStake), defaultTier3MinGfxStake),
			tier3MinStakeDuration: wrapper.NewDurationConfig(nonZeroOverride(overrides.tier3MinStakeDuration), defaultTier3MinStakeDuration),
			enableAddressCache:    wrapper.NewBoolConfig(memory.NewConfig(!overrides.disableAddressCache), defaultEnableAddressCache),
			maxSubmitAttempts:     wrapper.NewUint64Config(nonZeroOverride(overrides.maxSubmitAttempts), defaultMaxSubmitAttempts),
			computeUnitPrice:      wrapper.NewUint64Config(nonZeroOverride(overrides.computeUnitPrice), defaultComputeUnitPrice),
			computeUnitLimit:      wrapper.NewUint64Config(nonZeroOverride(overrides.computeUnitLimit), defaultComputeUnitLimit),
			transactionMemo:       wrapper.NewStringConfig(nonZeroOverride(overrides.transactionMemo), defaultTransactionMemo),
			gofxMint:              wrapper.NewPublicKeyConfig(keyOverride(overrides.gofxMint), mustDecodeKey(defaultGofxMint)),
			gofxVault:             wrapper.NewPublicKeyConfig(keyOverride(overrides.gofxVault), nil),
			orbMint:               wrapper.NewPublicKeyConfig(keyOverride(overrides.orbMint), nil),
			orbAuthority:          wrapper.NewPublicKeyConfig(keyOverride(overrides.orbAuthority), nil),
		}
	}
}

func keyOverride(key ed25519.PublicKey) *memory.Config {
	if key == nil {
		return memory.NewConfig(nil)
	}
	return memory.NewConfig(key)
}

func nonZeroOverride[T comparable](v T) *memory.Config {
	var zero T
	if v == zero {
		return memory.NewConfig(nil)
	}
	return memory.NewConfig(v)
}

func mustDecodeKey(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

package wrapper

import (
	"context"
	"crypto/ed25519"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/GooseFX1/NestQuestWeb/pkg/config"
)

// ErrUnsupportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsupportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// converter turns a raw override into T. Raw values from string based sources
// arrive as []byte.
type converter[T any] func(raw interface{}) (T, error)

type valueConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

func newValueConfig[T any](override config.Config, defaultValue T, convert converter[T]) *valueConfig[T] {
	return &valueConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *valueConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.setLastValue(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.setLastValue(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *valueConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *valueConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *valueConfig[T]) setLastValue(v T) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newValueConfig(override, defaultValue, func(raw interface{}) (bool, error) {
		switch typed := raw.(type) {
		case []byte:
			return strconv.ParseBool(string(typed))
		case bool:
			return typed, nil
		default:
			return false, ErrUnsupportedConversion
		}
	})
}

// NewUint64Config returns a new uint64 config utility wrapper. Underscores are
// accepted as digit separators in string sources.
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return newValueConfig(override, defaultValue, func(raw interface{}) (uint64, error) {
		switch typed := raw.(type) {
		case []byte:
			return strconv.ParseUint(strings.ReplaceAll(string(typed), "_", ""), 10, 64)
		case uint64:
			return typed, nil
		case uint:
			return uint64(typed), nil
		default:
			return 0, ErrUnsupportedConversion
		}
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newValueConfig(override, defaultValue, func(raw interface{}) (string, error) {
		switch typed := raw.(type) {
		case []byte:
			return string(typed), nil
		case string:
			return typed, nil
		default:
			return "", ErrUnsupportedConversion
		}
	})
}

// NewDurationConfig returns a new duration config utility wrapper. Bare
// integers in string sources are interpreted as seconds.
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return newValueConfig(override, defaultValue, func(raw interface{}) (time.Duration, error) {
		switch typed := raw.(type) {
		case []byte:
			s := string(typed)
			if secs, err := strconv.ParseUint(s, 10, 64); err == nil {
				return time.Duration(secs) * time.Second, nil
			}
			return time.ParseDuration(s)
		case time.Duration:
			return typed, nil
		default:
			return 0, ErrUnsupportedConversion
		}
	})
}

// NewPublicKeyConfig returns a new ed25519 public key config utility wrapper.
// String sources are base58 encoded.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return newValueConfig(override, defaultValue, func(raw interface{}) (ed25519.PublicKey, error) {
		var decoded []byte
		switch typed := raw.(type) {
		case []byte:
			var err error
			decoded, err = base58.Decode(string(typed))
			if err != nil {
				return nil, errors.Wrap(err, "invalid base58 public key")
			}
		case string:
			var err error
			decoded, err = base58.Decode(typed)
			if err != nil {
				return nil, errors.Wrap(err, "invalid base58 public key")
			}
		case ed25519.PublicKey:
			decoded = typed
		default:
			return nil, ErrUnsupportedConversion
		}

		if len(decoded) != ed25519.PublicKeySize {
			return nil, errors.Errorf("invalid public key length: %d", len(decoded))
		}
		return decoded, nil
	})
}

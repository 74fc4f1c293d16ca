package config

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is an interface for getting a raw configuration value
type Config interface {
	// Get returns the latest config value
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// Value provides a typed view over a Config.
type Value[T any] interface {
	// Get returns the latest value, falling back to the last known or
	// default value on error
	Get(ctx context.Context) T

	// GetSafe is like Get, but also surfaces the error
	GetSafe(ctx context.Context) (T, error)

	Shutdown()
}

type (
	Bool      = Value[bool]
	Duration  = Value[time.Duration]
	String    = Value[string]
	Uint64    = Value[uint64]
	PublicKey = Value[ed25519.PublicKey]
)

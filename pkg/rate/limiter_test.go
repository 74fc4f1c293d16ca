package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNoLimiter(t *testing.T) {
	l := &NoLimiter{}
	for i := 0; i < 1000; i++ {
		allowed, err := l.Allow("getAccountInfo")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestLocalRateLimiter_PerKey(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(2), 0)

	for _, key := range []string{"getAccountInfo", "sendTransaction"} {
		for i := 0; i < 2; i++ {
			allowed, err := l.Allow(key)
			assert.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := l.Allow(key)
		assert.NoError(t, err)
		assert.False(t, allowed)
	}
}

func TestLocalRateLimiter_Burst(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(1), 5)

	for i := 0; i < 5; i++ {
		allowed, err := l.Allow("getMultipleAccounts")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := l.Allow("getMultipleAccounts")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

package solana

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"

	"github.com/GooseFX1/NestQuestWeb/pkg/cache"
)

// Address derivation is pure, so results can be memoized without affecting
// correctness. Each entry weighs one unit against the budget.
const DefaultAddressCacheSize = 10_000

type derivedAddress struct {
	address ed25519.PublicKey
	bump    uint8
}

// AddressCache memoizes FindProgramAddressAndBump keyed on the program and
// seeds. It is safe for concurrent use.
type AddressCache struct {
	entries cache.Cache[derivedAddress]
}

func NewAddressCache(size int) *AddressCache {
	if size <= 0 {
		size = DefaultAddressCacheSize
	}

	return &AddressCache{
		entries: cache.NewCache[derivedAddress](size),
	}
}

// FindProgramAddressAndBump returns the same result as the package level
// function of the same name. A nil receiver derives without caching.
func (c *AddressCache) FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	if c == nil {
		return FindProgramAddressAndBump(program, seeds...)
	}

	key := addressCacheKey(program, seeds)
	if cached, ok := c.entries.Retrieve(key); ok {
		return copyKey(cached.address), cached.bump, nil
	}

	address, bump, err := FindProgramAddressAndBump(program, seeds...)
	if err != nil {
		return nil, 0, err
	}

	// A concurrent insert of the same key is harmless since both derived the
	// same value.
	_ = c.entries.Insert(key, derivedAddress{address: copyKey(address), bump: bump}, 1)

	return address, bump, nil
}

func (c *AddressCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Seeds are hex encoded and delimited so that different splits of the same
// bytes map to different keys.
func addressCacheKey(program ed25519.PublicKey, seeds [][]byte) string {
	var sb strings.Builder
	sb.WriteString(hex.EncodeToString(program))
	for _, seed := range seeds {
		sb.WriteByte('/')
		sb.WriteString(hex.EncodeToString(seed))
	}
	return sb.String()
}

func copyKey(key ed25519.PublicKey) ed25519.PublicKey {
	copied := make([]byte, len(key))
	copy(copied, key)
	return copied
}

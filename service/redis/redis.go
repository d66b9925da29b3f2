package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/ensgo/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key exists without an expire
	ErrNoTTL = errors.New("redis: key has no ttl")
)

// Forever is the expire value for keys without ttl
const Forever = time.Duration(-1)

// Service is the subset of redis commands the cache layer needs
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	TTL(context ctx.Ctx, key string) (int, error)
	Ping(context ctx.Ctx) error
}

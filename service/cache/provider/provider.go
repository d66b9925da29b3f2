package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/ensgo/base/ctx"
)

// NoExpiry is the ttl Get reports for keys stored without one
const NoExpiry time.Duration = 0

var (
	ErrNotFound = errors.New("Cache not found")
)

// Provider stores raw bytes under prefixed keys. Get returns the remaining
// ttl of the key, Set with a non-positive ttl keeps the key until evicted.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}

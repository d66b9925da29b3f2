package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/metrics"
	"github.com/x-xyz/ensgo/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")

	// ErrInvalidContainer is returned when the getter value does not fit the container
	ErrInvalidContainer = errors.New("cache container mismatch")
)

// OneTimeGetter must return a pointer of the container's element type
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// high order cache service
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl time.Duration
	// AbsentTtl is kept for values holding a nil pointer, Ttl when zero
	AbsentTtl   time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
	Metrics     metrics.Service
}

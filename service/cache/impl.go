package cache

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/metrics"
	"github.com/x-xyz/ensgo/domain/keys"
	"github.com/x-xyz/ensgo/service/cache/provider"
)

type impl struct {
	ttl         time.Duration
	absentTtl   time.Duration
	pfx         string
	cache       provider.Provider
	serialize   Serializer
	deserialize Deserializer
	met         metrics.Service
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}
	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}
	if config.Metrics == nil {
		config.Metrics = metrics.New("cache")
	}
	if config.AbsentTtl <= 0 {
		config.AbsentTtl = config.Ttl
	}

	return &impl{
		ttl:         config.Ttl,
		absentTtl:   config.AbsentTtl,
		pfx:         config.Pfx,
		cache:       config.Cache,
		serialize:   config.Serialize,
		deserialize: config.Deserialize,
		met:         config.Metrics,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		im.met.BumpSum("hit", 1, "prefix", im.pfx)
		return nil
	} else if err != ErrNotFound {
		c.WithField("err", err).WithField("key", key).Error("Get failed")
		return err
	}
	im.met.BumpSum("miss", 1, "prefix", im.pfx)

	val, err := getter()
	if err != nil {
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		// serve the fresh value even when it could not be cached
		c.WithField("err", err).WithField("key", key).Warn("Set failed")
	}

	return Fill(container, val)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	if val, _, err := im.cache.Get(c, key); err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	} else if err := im.deserialize(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("deserialize failed")
		return err
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	ttl := im.ttl
	if IsAbsent(value) {
		ttl = im.absentTtl
	}

	if val, err := im.serialize(value); err != nil {
		c.WithField("err", err).WithField("key", key).Error("serialize failed")
		return err
	} else if err := im.cache.Set(c, key, val, ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}

	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = keys.RedisKey(im.pfx, key)

	if err := im.cache.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Del failed")
		return err
	}

	return nil
}

// IsAbsent reports whether value is a pointer to a nil pointer, the shape
// getters use for lookups that found nothing
func IsAbsent(value interface{}) bool {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return false
	}
	switch e := v.Elem(); e.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return e.IsNil()
	}
	return false
}

// Fill copies *val into *container
func Fill(container, val interface{}) error {
	dst := reflect.ValueOf(container)
	src := reflect.ValueOf(val)
	if dst.Kind() != reflect.Ptr || src.Kind() != reflect.Ptr || src.IsNil() {
		return ErrInvalidContainer
	}
	if !src.Elem().Type().AssignableTo(dst.Elem().Type()) {
		return ErrInvalidContainer
	}
	dst.Elem().Set(src.Elem())
	return nil
}

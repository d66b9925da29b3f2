package usecase

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	goens "github.com/wealdtech/go-ens/v3"
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
	"github.com/x-xyz/ensgo/domain/keys"
	"github.com/x-xyz/ensgo/service/cache"
	"github.com/x-xyz/ensgo/service/ens"
)

// ENSClient is the part of *ens.Client the usecase reads through
type ENSClient interface {
	GetAddressRecord(ctx ctx.Ctx, name string, coin interface{}, strict bool) (*ensdomain.AddressRecord, error)
	GetTextRecord(ctx ctx.Ctx, name, key string, strict bool) (*ensdomain.TextRecord, error)
	GetContentHashRecord(ctx ctx.Ctx, name string, strict bool) (*ensdomain.ContentHash, error)
	GetABIRecord(ctx ctx.Ctx, name string, supportedContentTypes uint64, strict bool) (*ensdomain.ABIRecord, error)
	GetRecords(ctx ctx.Ctx, name string, opts ens.RecordsOptions) (*ensdomain.Records, error)
	GetResolver(ctx ctx.Ctx, name string) (*common.Address, error)
	GetName(ctx ctx.Ctx, address common.Address) (*ensdomain.NameResult, error)
}

type UsecaseCfg struct {
	Client ENSClient
	// Cache is optional, lookups go straight to the chain without it
	Cache cache.Service
}

type impl struct {
	client ENSClient
	cache  cache.Service
}

func New(cfg *UsecaseCfg) ensdomain.Usecase {
	return &impl{
		client: cfg.Client,
		cache:  cfg.Cache,
	}
}

func normalize(c ctx.Ctx, name string) (string, error) {
	if name == "" {
		return "", domain.ErrInvalidName
	}
	normalized, err := goens.Normalize(name)
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Info("normalize failed")
		return "", xerrors.Errorf("%s: %w", err.Error(), domain.ErrInvalidName)
	}
	return normalized, nil
}

// badCoin turns unknown coins into a bad param error
func badCoin(err error) error {
	var notFound *ens.CoinFormatterNotFoundError
	if errors.As(err, &notFound) {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrBadParamInput)
	}
	return err
}

// cached runs getter through the cache when one is configured. container is
// a pointer to the result pointer so absent records are cached as null.
func (im *impl) cached(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	if im.cache == nil {
		val, err := getter()
		if err != nil {
			return err
		}
		return cache.Fill(container, val)
	}
	return im.cache.GetByFunc(c, key, container, getter)
}

func (im *impl) GetAddress(c ctx.Ctx, name string, coin string, strict bool) (*ensdomain.AddressRecord, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	var arg interface{}
	if coin != "" {
		arg = coin
	}
	var res *ensdomain.AddressRecord
	key := keys.RedisKey(keys.PfxEns, name, "addr", strings.ToLower(coin), strconv.FormatBool(strict))
	err = im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetAddressRecord(c, name, arg, strict)
		if err != nil {
			return nil, badCoin(err)
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"coin": coin,
			"err":  err,
		}).Warn("GetAddressRecord failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetText(c ctx.Ctx, name string, key string, strict bool) (*ensdomain.TextRecord, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	var res *ensdomain.TextRecord
	cacheKey := keys.RedisKey(keys.PfxEns, name, "text", keys.MD5(key), strconv.FormatBool(strict))
	err = im.cached(c, cacheKey, &res, func() (interface{}, error) {
		v, err := im.client.GetTextRecord(c, name, key, strict)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"key":  key,
			"err":  err,
		}).Warn("GetTextRecord failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetContentHash(c ctx.Ctx, name string, strict bool) (*ensdomain.ContentHash, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	var res *ensdomain.ContentHash
	key := keys.RedisKey(keys.PfxEns, name, "contenthash", strconv.FormatBool(strict))
	err = im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetContentHashRecord(c, name, strict)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Warn("GetContentHashRecord failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetABI(c ctx.Ctx, name string, strict bool) (*ensdomain.ABIRecord, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	var res *ensdomain.ABIRecord
	key := keys.RedisKey(keys.PfxEns, name, "abi", strconv.FormatBool(strict))
	err = im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetABIRecord(c, name, ens.DefaultABIContentTypes, strict)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Warn("GetABIRecord failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetRecords(c ctx.Ctx, name string, query ensdomain.RecordsQuery) (*ensdomain.Records, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	coins := make([]interface{}, len(query.Coins))
	for i, coin := range query.Coins {
		coins[i] = coin
	}
	opts := ens.RecordsOptions{
		Texts:       query.Texts,
		Coins:       coins,
		ContentHash: query.ContentHash,
		ABI:         query.ABI,
		Strict:      query.Strict,
	}

	var res *ensdomain.Records
	key := keys.RedisKey(keys.PfxEnsRecords, name, keys.MD5(recordsKey(query)))
	err = im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetRecords(c, name, opts)
		if err != nil {
			return nil, badCoin(err)
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name":  name,
			"query": query,
			"err":   err,
		}).Warn("GetRecords failed")
		return nil, err
	}
	return res, nil
}

func recordsKey(q ensdomain.RecordsQuery) string {
	return keys.CustomKey("|",
		strings.Join(q.Texts, ","),
		strings.ToLower(strings.Join(q.Coins, ",")),
		strconv.FormatBool(q.ContentHash),
		strconv.FormatBool(q.ABI),
		strconv.FormatBool(q.Strict),
	)
}

func (im *impl) GetResolver(c ctx.Ctx, name string) (*domain.Address, error) {
	c = ctx.WithResolutionID(c)
	name, err := normalize(c, name)
	if err != nil {
		return nil, err
	}

	var res *domain.Address
	key := keys.RedisKey(keys.PfxEns, name, "resolver")
	err = im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetResolver(c, name)
		if err != nil {
			return nil, err
		}
		var addr *domain.Address
		if v != nil {
			a := domain.Address(v.Hex())
			addr = &a
		}
		return &addr, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Warn("GetResolver failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetName(c ctx.Ctx, address domain.Address) (*ensdomain.NameResult, error) {
	c = ctx.WithResolutionID(c)
	if !address.IsValid() {
		return nil, domain.ErrInvalidAddress
	}

	var res *ensdomain.NameResult
	key := keys.RedisKey(keys.PfxEnsReverse, address.ToLowerStr())
	err := im.cached(c, key, &res, func() (interface{}, error) {
		v, err := im.client.GetName(c, address.ToCommon())
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Warn("GetName failed")
		return nil, err
	}
	return res, nil
}

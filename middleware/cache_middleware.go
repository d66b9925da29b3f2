package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/base/metrics"
	"github.com/x-xyz/ensgo/service/cache"
	compoundcache "github.com/x-xyz/ensgo/service/cache/compoundCache"
	"github.com/x-xyz/ensgo/service/cache/provider"
)

const (
	cacheMiddlewarePfx = "httpCacheMiddleware"

	// local layer keeps responses shorter than the shared one
	maxLocalTTL = 10 * time.Second
)

// Response is the cached response data structure.
type Response struct {
	// Value is the cached response value.
	Value []byte

	// Header is the cached response header.
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Slice(param, func(i, j int) bool {
			return param[i] < param[j]
		})
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

// HttpCacheCfg configures CacheHttp. Local and Shared are optional layers,
// Local is read first.
type HttpCacheCfg struct {
	Ttl     time.Duration
	Local   provider.Provider
	Shared  provider.Provider
	Metrics metrics.Service
}

func newHttpCacheService(cfg HttpCacheCfg) cache.Service {
	layers := []cache.Service{}
	if cfg.Local != nil {
		localTTL := cfg.Ttl
		if localTTL > maxLocalTTL {
			localTTL = maxLocalTTL
		}
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:     localTTL,
			Pfx:     cacheMiddlewarePfx,
			Cache:   cfg.Local,
			Metrics: cfg.Metrics,
		}))
	}
	if cfg.Shared != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:     cfg.Ttl,
			Pfx:     cacheMiddlewarePfx,
			Cache:   cfg.Shared,
			Metrics: cfg.Metrics,
		}))
	}
	return compoundcache.NewCompoundCache(layers)
}

// CacheHttp replays successful GET responses keyed by their sorted URL.
// Without any layer or with a non-positive ttl it passes requests through.
func CacheHttp(cfg HttpCacheCfg) echo.MiddlewareFunc {
	if cfg.Ttl <= 0 || (cfg.Local == nil && cfg.Shared == nil) {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	cacheService := newHttpCacheService(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)

			sortURLParams(c.Request().URL)
			key := generateKey(c.Request().URL.String())

			response := Response{}
			err := cacheService.Get(ctx, key, &response)
			if err == nil {
				// cache hit
				for k, v := range response.Header {
					c.Response().Header().Set(k, strings.Join(v, ","))
				}
				c.Response().WriteHeader(http.StatusOK)
				c.Response().Write(response.Value)
				return nil
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Get")
			}

			// cache miss
			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &bodyDumpResponseWriter{Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode < 400 {
				response := Response{
					Value:  resBody.Bytes(),
					Header: writer.Header(),
				}

				if err := cacheService.Set(ctx, key, response); err != nil {
					ctx.WithFields(log.Fields{
						"err": err,
					}).Error("failed to cacheService.Set")
				}
			}

			return nil
		}
	}
}

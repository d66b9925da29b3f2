/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/ensgo/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as key prefix
func New(pkgName string) Service {
	tags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if pod := env.PodName(); pod != "" {
		tags = append(tags, "pod:"+pod)
	}
	return &Metrics{
		pkgName: pkgName,
		tags:    tags,
	}
}

// Metrics prefixes keys with the package name and sends them to the shared client
type Metrics struct {
	pkgName string
	tags    []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) fullTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	bump("BumpAvg", key, val, func(c statsCli) error {
		return c.Gauge(mt.key(key), val, mt.fullTags(tags), rate)
	})
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	bump("BumpSum", key, val, func(c statsCli) error {
		return c.Count(mt.key(key), int64(val), mt.fullTags(tags), rate)
	})
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	bump("BumpHistogram", key, val, func(c statsCli) error {
		return c.Histogram(mt.key(key), val, mt.fullTags(tags), rate)
	})
}

// BumpTime starts a timer and records it in milliseconds on End():
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  mt.fullTags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (tt *timeTracker) End() {
	dur := float64(time.Since(tt.start)) / float64(time.Millisecond)
	bump("BumpTime", tt.key, dur, func(c statsCli) error {
		return c.TimeInMilliseconds(tt.key, dur, tt.tags, rate)
	})
}

// parseTag turns key/value pairs into datadog "key:value" tags, dropping a dangling key
func parseTag(tags []string) []string {
	arr := make([]string, 0, len(tags)/2)
	for i := 0; i+1 < len(tags); i += 2 {
		arr = append(arr, tags[i]+":"+strings.ReplaceAll(tags[i+1], ",", "_"))
	}
	return arr
}

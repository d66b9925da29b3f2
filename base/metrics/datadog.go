package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/ensgo/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// rate is the rate to pass metrics to datadog agent. 1 means always
	rate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	// DdPort is the statsd port of the datadog agent
	DdPort = 8125

	// clientsIdx is used for accessing clients by round robin scheduling
	clientsIdx = int32(0)
	clients    []statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// initClients dials the datadog agent, or logs every metric when no agent host is configured
func initClients() {
	host := viper.GetString("datadog_host")
	clients = make([]statsCli, ddClientsSize)
	if host == "" {
		log.Log().Info("datadog_host not set, metrics go to the log")
		for i := range clients {
			clients[i] = &LogClient{}
		}
		return
	}

	addr := fmt.Sprintf("%s:%d", host, DdPort)
	for i := range clients {
		c, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent, fallback to log")
			clients[i] = &LogClient{}
			continue
		}
		clients[i] = c
	}
	log.Log().WithField("addr", addr).Info("connected to datadog agent")
}

func bump(fn, key string, val float64, send func(statsCli) error) {
	initOnce.Do(initClients)
	i := atomic.AddInt32(&clientsIdx, 1) & ddClientsIdxMask
	if err := send(clients[i]); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
	}
}

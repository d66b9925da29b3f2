package ccip

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/base/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 4 << 20

	msgInvalidJSON = "invalid JSON"
)

var ErrNoGateway = errors.New("no gateway url")

// Gateway performs the CCIP-read HTTP round trip for one request
type Gateway interface {
	Query(ctx bCtx.Ctx, req Request) ([]byte, error)
}

type GatewayCfg struct {
	HttpClient *http.Client
	// Timeout bounds each url attempt
	Timeout time.Duration
	Metrics metrics.Service
}

type gateway struct {
	client  *http.Client
	timeout time.Duration
	met     metrics.Service
}

func NewGateway(cfg GatewayCfg) Gateway {
	if cfg.HttpClient == nil {
		cfg.HttpClient = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New("ccip")
	}
	return &gateway{
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		met:     cfg.Metrics,
	}
}

// Query tries each url in order and returns the first good response. When every url
// fails the last failure is returned as *HttpError.
func (g *gateway) Query(ctx bCtx.Ctx, req Request) ([]byte, error) {
	if len(req.URLs) == 0 {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: ErrNoGateway.Error()}
	}

	var last *HttpError
	for _, url := range req.URLs {
		data, herr := g.fetch(ctx, url, req)
		if herr == nil {
			return data, nil
		}
		ctx.WithFields(log.Fields{
			"url":    url,
			"sender": req.Sender.Hex(),
			"status": herr.Status,
			"err":    herr.Message,
		}).Warn("gateway request failed")
		g.met.BumpSum("gateway.err", 1, "status", http.StatusText(int(herr.Status)))
		last = herr
	}
	return nil, last
}

type gatewayBody struct {
	Sender string `json:"sender"`
	Data   string `json:"data"`
}

type gatewayResp struct {
	Data string `json:"data"`
}

func (g *gateway) fetch(ctx bCtx.Ctx, url string, req Request) ([]byte, *HttpError) {
	defer g.met.BumpTime("gateway.latency").End()

	c, cancel := bCtx.WithTimeout(ctx, g.timeout)
	defer cancel()

	sender := strings.ToLower(req.Sender.Hex())
	data := hexutil.Encode(req.CallData)
	url = strings.ReplaceAll(url, "{sender}", sender)

	var (
		httpReq *http.Request
		err     error
	)
	if strings.Contains(url, "{data}") {
		httpReq, err = http.NewRequestWithContext(c, http.MethodGet, strings.ReplaceAll(url, "{data}", data), nil)
	} else {
		body, _ := json.Marshal(gatewayBody{Sender: sender, Data: data})
		httpReq, err = http.NewRequestWithContext(c, http.MethodPost, url, bytes.NewReader(body))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: err.Error()}
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HttpError{Status: uint16(resp.StatusCode), Message: http.StatusText(resp.StatusCode)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	parsed := gatewayResp{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: msgInvalidJSON}
	}
	res, err := hexutil.Decode(parsed.Data)
	if err != nil {
		return nil, &HttpError{Status: http.StatusInternalServerError, Message: msgInvalidJSON}
	}
	return res, nil
}

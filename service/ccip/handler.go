package ccip

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/viney-shih/goroutines"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	"github.com/x-xyz/ensgo/base/counter"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
)

const defaultConcurrency = 8

type HandlerCfg struct {
	// UniversalResolver is the only sender whose batch gateway queries are served locally
	UniversalResolver common.Address
	Gateway           Gateway
	// Concurrency bounds the parallel gateway requests of one batch
	Concurrency int
}

// Handler serves single lookups through the gateway and resolves batch gateway
// queries locally, deduplicating identical sub-requests.
type Handler struct {
	universalResolver common.Address
	gateway           Gateway
	concurrency       int
}

func NewHandler(cfg HandlerCfg) *Handler {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Gateway == nil {
		cfg.Gateway = NewGateway(GatewayCfg{})
	}
	return &Handler{
		universalResolver: cfg.UniversalResolver,
		gateway:           cfg.Gateway,
		concurrency:       cfg.Concurrency,
	}
}

func (h *Handler) Handle(ctx bCtx.Ctx, req Request) ([]byte, error) {
	if h.isBatch(req) {
		queries, err := decodeQueries(req.CallData)
		if err == nil {
			return h.batch(ctx, queries)
		}
		ctx.WithFields(log.Fields{
			"sender": req.Sender.Hex(),
			"err":    err,
		}).Warn("batch gateway query not decodable, fallback to single lookup")
	}
	return h.gateway.Query(ctx, req)
}

func (h *Handler) isBatch(req Request) bool {
	return req.Sender == h.universalResolver &&
		len(req.CallData) >= 4 &&
		bytes.Equal(req.CallData[:4], bAbi.BatchGatewayQuery.ID)
}

type queryTuple = struct {
	Sender   common.Address `json:"sender"`
	Urls     []string       `json:"urls"`
	CallData []byte         `json:"callData"`
}

var errMalformedQuery = errors.New("malformed batch gateway query")

func decodeQueries(callData []byte) ([]Request, error) {
	unpacked, err := bAbi.BatchGatewayQuery.Inputs.Unpack(callData[4:])
	if err != nil {
		return nil, err
	}
	if len(unpacked) != 1 {
		return nil, errMalformedQuery
	}
	tuples, ok := unpacked[0].([]queryTuple)
	if !ok {
		return nil, errMalformedQuery
	}
	reqs := make([]Request, len(tuples))
	for i, t := range tuples {
		reqs[i] = Request{Sender: t.Sender, URLs: t.Urls, CallData: t.CallData}
	}
	return reqs, nil
}

// EncodeQueries builds the batch gateway call data for reqs
func EncodeQueries(reqs []Request) ([]byte, error) {
	tuples := make([]queryTuple, len(reqs))
	for i, r := range reqs {
		tuples[i] = queryTuple{Sender: r.Sender, Urls: r.URLs, CallData: r.CallData}
	}
	args, err := bAbi.BatchGatewayQuery.Inputs.Pack(tuples)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, bAbi.BatchGatewayQuery.ID...), args...), nil
}

// DecodeResponses unpacks a batch gateway result
func DecodeResponses(data []byte) ([]Response, error) {
	unpacked, err := bAbi.BatchGatewayQuery.Outputs.Unpack(data)
	if err != nil {
		return nil, err
	}
	failures, ok1 := unpacked[0].([]bool)
	responses, ok2 := unpacked[1].([][]byte)
	if !ok1 || !ok2 || len(failures) != len(responses) {
		return nil, errMalformedQuery
	}
	res := make([]Response, len(failures))
	for i := range failures {
		res[i] = Response{IsError: failures[i], Data: responses[i]}
	}
	return res, nil
}

// EncodeHttpError renders err the way failed batch entries carry it
func EncodeHttpError(err *HttpError) []byte {
	args, packErr := bAbi.BatchGatewayHttpError.Inputs.Pack(err.Status, err.Message)
	if packErr != nil {
		// both fields are plain values so Pack cannot fail
		panic(packErr)
	}
	return append(append([]byte{}, bAbi.BatchGatewayHttpError.ID[:4]...), args...)
}

// DecodeHttpError is the inverse of EncodeHttpError
func DecodeHttpError(data []byte) (*HttpError, bool) {
	if len(data) < 4 || !bytes.Equal(data[:4], bAbi.BatchGatewayHttpError.ID[:4]) {
		return nil, false
	}
	unpacked, err := bAbi.BatchGatewayHttpError.Inputs.Unpack(data[4:])
	if err != nil || len(unpacked) != 2 {
		return nil, false
	}
	status, ok1 := unpacked[0].(uint16)
	message, ok2 := unpacked[1].(string)
	if !ok1 || !ok2 {
		return nil, false
	}
	return &HttpError{Status: status, Message: message}, true
}

type indexed struct {
	idx  int
	resp Response
}

func (h *Handler) batch(ctx bCtx.Ctx, queries []Request) ([]byte, error) {
	responses := serve(ctx, h.gateway.Query, queries, h.concurrency)

	failures := make([]bool, len(queries))
	data := make([][]byte, len(queries))
	for i, r := range responses {
		failures[i] = r.IsError
		data[i] = r.Data
	}

	res, err := bAbi.BatchGatewayQuery.Outputs.Pack(failures, data)
	if err != nil {
		ctx.WithField("err", err).Error("pack batch gateway response failed")
		return nil, err
	}
	return res, nil
}

// ServeAll answers reqs through h in one pass. Identical requests are sent
// once and at most concurrency run at a time. Responses are positional.
func ServeAll(ctx bCtx.Ctx, h RequestHandler, reqs []Request, concurrency int) []Response {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return serve(ctx, h.Handle, reqs, concurrency)
}

type queryFunc func(ctx bCtx.Ctx, req Request) ([]byte, error)

func serve(ctx bCtx.Ctx, query queryFunc, reqs []Request, concurrency int) []Response {
	var (
		uniq   = map[string]int{}
		unique = []Request{}
		slot   = make([]int, len(reqs))
	)
	for i, q := range reqs {
		k := q.key()
		j, ok := uniq[k]
		if !ok {
			j = len(unique)
			uniq[k] = j
			unique = append(unique, q)
		}
		slot[i] = j
	}

	responses := fanout(ctx, query, unique, concurrency)

	out := make([]Response, len(reqs))
	for i := range reqs {
		out[i] = responses[slot[i]]
	}
	return out
}

func fanout(ctx bCtx.Ctx, query queryFunc, reqs []Request, concurrency int) []Response {
	responses := make([]Response, len(reqs))
	if len(reqs) == 0 {
		return responses
	}

	failed := counter.NewCounter()
	b := goroutines.NewBatch(concurrency, goroutines.WithBatchSize(len(reqs)))
	defer b.Close()
	for i := range reqs {
		idx := i
		b.Queue(func() (interface{}, error) {
			data, err := query(ctx, reqs[idx])
			if err == nil {
				return indexed{idx, Response{Data: data}}, nil
			}
			failed.Inc()
			var herr *HttpError
			if !errors.As(err, &herr) {
				herr = &HttpError{Status: http.StatusInternalServerError, Message: err.Error()}
			}
			return indexed{idx, Response{IsError: true, Data: EncodeHttpError(herr), Err: err}}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		r := ret.Value().(indexed)
		responses[r.idx] = r.resp
	}

	ctx.WithFields(log.Fields{
		"unique": len(reqs),
		"failed": failed.Count(),
	}).Debug("offchain lookups resolved")
	return responses
}

package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"

	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
)

// ThrottledCaller bounds the number of in-flight eth_call requests to the wrapped caller
type ThrottledCaller struct {
	caller domain.ContractCaller
	tokens chan int
}

func NewThrottledCaller(caller domain.ContractCaller, n int) *ThrottledCaller {
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledCaller{
		caller: caller,
		tokens: tokens,
	}
}

func (c *ThrottledCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.caller.CallContract(ctx, msg, number)
}

func (c *ThrottledCaller) before(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithFields(log.Fields{"wait": time.Since(now)}).Warn("throttle ctx done")
		return 0, ctx.Err()
	case token := <-c.tokens:
		if wait := time.Since(now); wait > time.Second {
			log.Log().WithFields(log.Fields{"token": token, "wait": wait}).Debug("throttle waited")
		}
		return token, nil
	}
}

func (c *ThrottledCaller) after(token int) {
	c.tokens <- token
}

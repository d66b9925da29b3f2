package ctx

import (
	"context"
	"time"

	"github.com/google/uuid"

	log "github.com/x-xyz/ensgo/base/log"
)

// KeyResolutionID tags every log line emitted while serving one top-level resolution
const KeyResolutionID = "resolutionID"

type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

// From lifts a plain context into a Ctx with an empty field logger
func From(parent context.Context) Ctx {
	if c, ok := parent.(Ctx); ok {
		return c
	}
	return Ctx{
		Context: parent,
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

// WithResolutionID attaches a fresh resolution id unless one is already present
func WithResolutionID(parent Ctx) Ctx {
	if id, ok := parent.Value(KeyResolutionID).(string); ok && id != "" {
		return parent
	}
	return WithValue(parent, KeyResolutionID, uuid.NewString())
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

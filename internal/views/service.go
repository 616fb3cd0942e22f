package views

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Zachkp/folio/internal/logger"
)

// Placeholder is shown when the count is unknown.
const Placeholder = "--"

// Count is a view count that may be unknown.
type Count struct {
	Value int64
	Known bool
}

func (c Count) String() string {
	if !c.Known {
		return Placeholder
	}
	return strconv.FormatInt(c.Value, 10)
}

// JSON returns the value for {"value": ...}; nil when unknown.
func (c Count) JSON() *int64 {
	if !c.Known {
		return nil
	}
	v := c.Value
	return &v
}

// Service counts each post at most once per browsing session.
type Service struct {
	counter Counter
	timeout time.Duration
	log     *logger.Logger
}

func NewService(counter Counter, timeout time.Duration, log *logger.Logger) *Service {
	if counter == nil {
		counter = Disabled{}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{counter: counter, timeout: timeout, log: log}
}

// Count increments the counter for key on the session's first view and only
// reads it afterwards. Failures yield an unknown count, never an error.
func (s *Service) Count(ctx context.Context, key string, seen bool) Count {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	op, call := "hit", s.counter.Hit
	if seen {
		op, call = "get", s.counter.Get
	}

	n, err := call(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrDisabled) {
			s.log.WarnWithFields("view counter unavailable", []logger.Field{
				logger.F("op", op), logger.F("key", key), logger.F("err", err),
			})
		}
		return Count{}
	}
	s.log.DebugWithFields("view count", []logger.Field{
		logger.F("op", op), logger.F("key", key), logger.F("value", n),
	})
	return Count{Value: n, Known: true}
}

// MarkerName is the session marker recording that key was already counted.
func MarkerName(key string) string {
	return "viewed-" + key
}

// Package cache keeps payroll sums for closed periods in redis in front of
// the store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"payroll-assistant/internal/assistant/period"
	"payroll-assistant/internal/assistant/query"
	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/common/logger"
	"payroll-assistant/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payroll:sum:"

// PayrollCache is a read-through query.PayrollReader. Only ranges that ended
// before today are cached; open ranges always go to the wrapped reader.
// Redis failures are logged and the call falls through as well.
type PayrollCache struct {
	next   query.PayrollReader
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

type Option func(*PayrollCache)

// WithClock sets the clock that decides whether a range is closed. Its
// location should match the one used to resolve periods.
func WithClock(now func() time.Time) Option {
	return func(c *PayrollCache) { c.now = now }
}

func NewPayrollCache(next query.PayrollReader, client *redis.Client, ttl time.Duration, log logger.Logger, opts ...Option) *PayrollCache {
	c := &PayrollCache{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "payroll-cache"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cacheable reports whether end is a valid date strictly before today.
func (c *PayrollCache) Cacheable(end string) bool {
	now := c.now()
	endDate, err := time.ParseInLocation(period.DateLayout, end, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return endDate.Before(today)
}

func Key(agentID int64, start, end string) string {
	return fmt.Sprintf("%s%d:%s:%s", keyPrefix, agentID, start, end)
}

func (c *PayrollCache) SumPayrollInRange(ctx context.Context, agentID int64, start, end string) (float64, error) {
	if !c.Cacheable(end) {
		metrics.PayrollCacheRequests.WithLabelValues("bypass").Inc()
		return c.next.SumPayrollInRange(ctx, agentID, start, end)
	}
	key := Key(agentID, start, end)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		if total, parseErr := strconv.ParseFloat(val, 64); parseErr == nil {
			metrics.PayrollCacheRequests.WithLabelValues("hit").Inc()
			return total, nil
		}
		metrics.PayrollCacheRequests.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		metrics.PayrollCacheRequests.WithLabelValues("miss").Inc()
	default:
		metrics.PayrollCacheRequests.WithLabelValues("error").Inc()
		c.logger.Warn("payroll cache read failed", map[string]interface{}{
			"error": apperrors.NewCacheUnavailableError("get", err),
		})
	}

	total, err := c.next.SumPayrollInRange(ctx, agentID, start, end)
	if err != nil {
		return 0, err
	}

	if err := c.redis.Set(ctx, key, strconv.FormatFloat(total, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.logger.Warn("payroll cache write failed", map[string]interface{}{
			"error": apperrors.NewCacheUnavailableError("set", err),
		})
	}
	return total, nil
}

// Package retry provides transparent retry for transient persistence failures:
// optimistic-lock conflicts, deadlocks and lock wait timeouts.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"dddkit/config"
	"dddkit/domain/user"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers, see https://dev.mysql.com/doc/mysql-errors/
const (
	mysqlErrDeadlock    = 1213
	mysqlErrLockTimeout = 1205
)

// Config controls retry behavior for a unit of work.
type Config struct {
	Enabled                       bool
	MaxAttempts                   int
	InitialDelay                  time.Duration
	MaxDelay                      time.Duration
	BackoffFactor                 float64
	JitterEnabled                 bool
	RetryOnConcurrentModification bool
	RetryOnDeadlock               bool
	RetryOnLockTimeout            bool

	// RetryPredicate, when set, marks additional errors as retryable.
	RetryPredicate func(error) bool
}

// DefaultConfig matches the database.retry configuration defaults.
var DefaultConfig = Config{
	Enabled:                       true,
	MaxAttempts:                   3,
	InitialDelay:                  100 * time.Millisecond,
	MaxDelay:                      2 * time.Second,
	BackoffFactor:                 2.0,
	JitterEnabled:                 true,
	RetryOnConcurrentModification: true,
	RetryOnDeadlock:               true,
	RetryOnLockTimeout:            true,
}

// FromAppConfig builds a retry Config from the application configuration.
func FromAppConfig(appConfig *config.Config) Config {
	r := appConfig.Database.Retry
	return Config{
		Enabled:                       r.Enabled,
		MaxAttempts:                   r.MaxAttempts,
		InitialDelay:                  r.InitialDelay,
		MaxDelay:                      r.MaxDelay,
		BackoffFactor:                 r.BackoffFactor,
		JitterEnabled:                 r.JitterEnabled,
		RetryOnConcurrentModification: r.RetryOnConcurrentModification,
		RetryOnDeadlock:               r.RetryOnDeadlock,
		RetryOnLockTimeout:            r.RetryOnLockTimeout,
	}
}

// ExponentialBackoffWithJitter computes the delay before the given attempt.
// Jitter spreads delay in the [0.8, 1.2] range of the computed value.
func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// IsRetryableError reports whether err is worth retrying under config.
func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}

	if config.RetryOnConcurrentModification && errors.Is(err, user.ErrConcurrentModification) {
		return true
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock:
			return config.RetryOnDeadlock
		case mysqlErrLockTimeout:
			return config.RetryOnLockTimeout
		}
	}

	// Fall back to message matching for errors wrapped by layers that
	// discard the driver error type.
	errStr := err.Error()
	if config.RetryOnConcurrentModification && strings.Contains(errStr, "concurrent modification") {
		return true
	}
	if config.RetryOnDeadlock &&
		(strings.Contains(errStr, "deadlock") || strings.Contains(errStr, "lock wait timeout")) {
		return true
	}
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		(strings.Contains(errStr, "connection") && strings.Contains(errStr, "lost")) {
		return true
	}

	return false
}

// ExecuteWithRetry runs fn, retrying retryable failures with exponential
// backoff. The last error is returned when attempts are exhausted.
func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		if delay := ExponentialBackoffWithJitter(attempt, config); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}

// ExecuteWithAppConfig is ExecuteWithRetry using the application configuration.
func ExecuteWithAppConfig(ctx context.Context, appConfig *config.Config, fn func(ctx context.Context) error) error {
	return ExecuteWithRetry(ctx, FromAppConfig(appConfig), fn)
}

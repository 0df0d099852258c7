package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

// RetryConfig drives retry behaviour for outbound connector calls.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS,notEmpty"`
	Delay    time.Duration `env:"DELAY,notEmpty"`
	MaxDelay time.Duration `env:"MAX_DELAY,notEmpty"`
	Timeout  time.Duration `env:"TIMEOUT,notEmpty"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

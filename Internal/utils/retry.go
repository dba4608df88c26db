package utils

import (
	"log"
	"time"
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// RetryWithBackoff runs fn until it succeeds or attempts run out,
// doubling the delay between attempts up to MaxDelay.
func RetryWithBackoff(fn func() error, config RetryConfig) error {
	var err error
	delay := config.BaseDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == config.MaxAttempts {
			break
		}
		log.Printf("Attempt %d/%d failed: %v (retrying in %s)", attempt, config.MaxAttempts, err, delay)
		time.Sleep(delay)
		delay *= 2
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}
	return err
}

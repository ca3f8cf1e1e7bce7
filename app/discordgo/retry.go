package discord

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"net"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/reactable-club/discord-menu-bot/observability/attr"
)

const (
	maxAPIRetryAttempts = 4
	apiBaseRetryDelay   = 250 * time.Millisecond
	apiMaxRetryDelay    = 2 * time.Second
)

// RetryDiscordAPI retries transient Discord API failures with exponential
// backoff and jitter. Non-retryable errors are returned immediately.
func RetryDiscordAPI(logger *slog.Logger, operation string, fn func() error) error {
	delay := apiBaseRetryDelay
	var lastErr error

	for attempt := 1; attempt <= maxAPIRetryAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if attempt == maxAPIRetryAttempts || !isRetryableDiscordError(err) {
			return err
		}

		wait := delay + randomJitter(delay/2)
		if logger != nil {
			logger.Warn("Retrying transient Discord API failure",
				attr.String("operation", operation),
				attr.Int("attempt", attempt),
				attr.Duration("retry_in", wait),
				attr.Error(err),
			)
		}

		time.Sleep(wait)
		delay *= 2
		if delay > apiMaxRetryDelay {
			delay = apiMaxRetryDelay
		}
	}

	return lastErr
}

func isRetryableDiscordError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil {
			status := restErr.Response.StatusCode
			if status == 429 || status >= 500 {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}

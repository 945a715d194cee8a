package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/config"
)

const localSentryHub = "sentry_hub"

// InitSentry initializes the Sentry SDK. It is a no-op unless enabled with a DSN.
func InitSentry(cfg config.SentryConfig, release string) error {
	if !cfg.Enabled || cfg.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          release,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	return nil
}

// FlushSentry flushes any buffered events to Sentry
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}

// RecoverWithSentry recovers panics into a 500 response, logging them and
// reporting them to Sentry when enabled
func RecoverWithSentry(logger *zap.Logger, sentryEnabled bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		var hub *sentry.Hub
		if sentryEnabled {
			hub = sentry.CurrentHub().Clone()
			setSentryRequestContext(hub, c)
			hub.Scope().SetTag("request_id", GetRequestID(c))
			c.Locals(localSentryHub, hub)
		}

		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}

			logger.Error("panic recovered",
				zap.Error(panicErr),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()),
				zap.String("stack", string(stack)),
				zap.String("request_id", GetRequestID(c)),
			)

			if hub != nil {
				hub.Scope().SetExtra("stack_trace", string(stack))
				hub.Scope().SetLevel(sentry.LevelFatal)

				if eventID := hub.RecoverWithContext(c.UserContext(), r); eventID != nil {
					logger.Info("panic reported to Sentry",
						zap.String("event_id", string(*eventID)),
					)
				}
				hub.Flush(2 * time.Second)
			}

			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":      "Internal Server Error",
				"message":    "An unexpected error occurred",
				"request_id": GetRequestID(c),
			})
		}()

		return c.Next()
	}
}

// CaptureError reports an error to Sentry from a Fiber context
func CaptureError(c *fiber.Ctx, err error) {
	hub, ok := c.Locals(localSentryHub).(*sentry.Hub)
	if !ok || hub == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("path", c.Path())
		scope.SetExtra("method", c.Method())
		hub.CaptureException(err)
	})
}

// setSentryRequestContext sets request context on a Sentry hub from Fiber context
func setSentryRequestContext(hub *sentry.Hub, c *fiber.Ctx) {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if k != fiber.HeaderAuthorization && k != fiber.HeaderCookie {
			headers[k] = string(value)
		}
	})

	hub.Scope().SetContext("Request", map[string]interface{}{
		"url":          c.OriginalURL(),
		"method":       c.Method(),
		"headers":      headers,
		"query_string": string(c.Request().URI().QueryString()),
		"remote_addr":  c.IP(),
	})
}

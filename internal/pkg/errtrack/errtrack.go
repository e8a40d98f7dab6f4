package errtrack

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Init configures Sentry. An empty DSN leaves capturing disabled.
func Init(opts Options) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			event.User = sentry.User{}
			return event
		},
	})
	if err != nil {
		slog.Warn("Sentry init failed, error tracking disabled", "error", err)
		return
	}
	if opts.DSN == "" {
		slog.Info("SENTRY_DSN empty, error tracking disabled")
	}
}

func Flush() { sentry.Flush(2 * time.Second) }

// CaptureError reports err with tags. Nil errors are ignored.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// CapturePanic reports a recovered panic value on the request's hub.
func CapturePanic(ctx context.Context, recovered interface{}, tags map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		hub.RecoverWithContext(ctx, recovered)
	})
}

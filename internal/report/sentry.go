package report

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initializes the Sentry client from the SENTRY_DSN environment
// variable. With an empty DSN the client is a no-op, which is the normal
// state for local analysis runs.
func SetupSentry() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
}

// FlushSentry drains buffered events before the process exits. Analysis runs
// are short-lived, so without this the last errors of a run would be lost.
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}

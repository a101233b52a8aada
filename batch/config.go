package batch

import (
	"log/slog"
	"time"
)

// Opts is used to configure an Executor via the NewExecutor function.
type Opts struct {
	// MaxSize is the number of tasks that triggers an immediate run of the batch.
	MaxSize int
	// MaxLinger is how long a partial batch waits for more tasks before it is run.
	MaxLinger time.Duration
	// Logger receives batch diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Opts) validate() {
	if o.MaxSize <= 1 {
		panic("maximum batch size must be greater than 1")
	}

	if o.MaxLinger <= 0 {
		panic("batch linger must be greater than 0")
	}
}

func (o Opts) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

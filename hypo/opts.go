package hypo

import (
	"log/slog"
	"time"

	"github.com/uberbrodt/hypo-go/chronos"
)

// used when [Hypothesis.Validate] is called with a timeout <= 0
var DefaultValidateTimeout time.Duration = chronos.Dur("5s")

type options struct {
	name   string
	logger *slog.Logger
	clock  chronos.Clock
}

type Opt func(o options) options

// Set a name that will identify the hypothesis in failure reports and logs
func Name(name string) Opt {
	return func(o options) options {
		o.name = name
		return o
	}
}

// Use [logger] instead of the default, which is [slog.Default] tagged with the
// hypothesis name.
func SetLogger(logger *slog.Logger) Opt {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// Measure validation timeouts with [clock]. Defaults to [chronos.Real]; tests can pass a
// [chronos.Fake] to control when a timeout fires.
func WithClock(clock chronos.Clock) Opt {
	return func(o options) options {
		o.clock = clock
		return o
	}
}

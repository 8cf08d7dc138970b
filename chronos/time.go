// Package chronos holds the time related helpers shared by the hypo packages: duration
// literals for package defaults and the [Clock] that timeouts are measured with.
package chronos

import (
	"time"
)

// Parses a duration literal, panicking if it is invalid. Intended for package level
// defaults like `var DefaultTimeout = chronos.Dur("5s")`.
func Dur(s string) time.Duration {
	t, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return t
}

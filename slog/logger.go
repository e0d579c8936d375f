// Package slog wires zerolog into named logging channels (console/file
// writers, a global registry), trimmed to the three channels this module's
// compile/solve pipeline emits on: compile, solve, rule.
package slog

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu       sync.RWMutex
	registry = map[ChannelLabel]*zerolog.Logger{}
	disabled = zerolog.Nop()
)

// Configure replaces the global channel registry. A channel that fails to
// initialize is skipped and the first such error is returned; channels that did succeed
// are still registered so partial configuration degrades rather than panics.
func Configure(channels Channels) error {
	mu.Lock()
	defer mu.Unlock()

	next := map[ChannelLabel]*zerolog.Logger{}
	var firstErr error
	for _, ch := range channels {
		if err := ch.Initialize(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		l := ch.logger
		next[ch.Name] = &l
	}
	registry = next
	return firstErr
}

// DefaultChannels returns the console-only configuration used when the
// caller hasn't called Configure: each channel logs at "info" to stderr.
func DefaultChannels() Channels {
	mk := func(name ChannelLabel) *Channel {
		return &Channel{Name: name, LogLevel: "info", WriterTypes: WriterTypes{WRITERTYPE_CONSOLE_STDERR}}
	}
	return Channels{mk(LOGGER_COMPILE), mk(LOGGER_SOLVE), mk(LOGGER_RULE)}
}

func init() {
	_ = Configure(DefaultChannels())
}

// L returns the logger for the named channel, or a no-op logger if the
// channel was never configured.
func L(name ChannelLabel) *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if l, ok := registry[name]; ok {
		return l
	}
	return &disabled
}

package herald

import (
	"sync"

	"github.com/rs/zerolog"
)

// Options handed to Default when it first builds the shared registry.
var (
	defaultOptions []Option
	defaultOptMu   sync.Mutex
)

// Option configures a Registry.
type Option func(*Registry)

// PanicHandler receives a recovered listener panic together with the key
// whose listeners were running. It is only consulted when installed with
// WithPanicHandler.
type PanicHandler func(key Key, recovered any)

// Configure records the options the shared registry is built with.
// Call it before the first use of Default or the package-level AddListener,
// AddOnceListener, RemoveListener and Emit; the shared registry is built once
// and later calls do not reconfigure it.
func Configure(opts ...Option) {
	defaultOptMu.Lock()
	defaultOptions = opts
	defaultOptMu.Unlock()
}

// WithLogger sets the logger used for debug and trace output.
// The default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithPanicHandler recovers listener panics and hands them to handler.
// Dispatch continues with the next listener. Without a handler, panics
// propagate to the caller of Emit.
func WithPanicHandler(handler PanicHandler) Option {
	return func(r *Registry) {
		r.panicHandler = handler
	}
}

// WithOnceReturnValue sets the once-sentinel. A listener whose callback
// returns a value equal to it is removed after that call. Default is true.
func WithOnceReturnValue(value any) Option {
	return func(r *Registry) {
		r.onceReturnValue = value
	}
}

package cell

import "github.com/rs/zerolog"

// OnErrorFunc receives errors returned by effect re-runs.
type OnErrorFunc func(sub *Subscription, err error)

// Option configures a Runtime.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	onError  OnErrorFunc
	registry bool
}

// WithLogger sets the logger used for runtime diagnostics. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithOnError routes errors from effect re-runs to fn instead of the logger.
func WithOnError(fn OnErrorFunc) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithRegistry enables the introspection registry. Registered signals stay
// reachable for as long as the runtime is.
func WithRegistry() Option {
	return func(o *options) {
		o.registry = true
	}
}

// SignalOption configures a single signal.
type SignalOption func(*signalOptions)

type signalOptions struct {
	name string
}

// Named gives a signal a human readable name used in logs, errors and
// registry lookups.
func Named(name string) SignalOption {
	return func(o *signalOptions) {
		o.name = name
	}
}

// EffectOption configures an effect subscription.
type EffectOption func(*effectOptions)

type effectOptions struct {
	gate func(*Subscription) bool
}

// WithGate installs a predicate consulted on every dependency notification.
// The effect only re-runs when gate returns true. Framework integrations use
// it to skip re-runs they consider redundant.
func WithGate(gate func(*Subscription) bool) EffectOption {
	return func(o *effectOptions) {
		o.gate = gate
	}
}

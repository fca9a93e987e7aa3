// SPDX-License-Identifier: Unlicense OR MIT

package app

import "go.uber.org/zap"

// Option configures a Runner or Target.
type Option func(*config)

type config struct {
	logger          *zap.Logger
	controlFlow     ControlFlow
	replaceListener bool
}

func newConfig(opts []Option) config {
	cnf := config{
		controlFlow: ControlFlow{Mode: Poll},
	}
	for _, o := range opts {
		o(&cnf)
	}
	if cnf.logger == nil {
		cnf.logger = Logger()
	}
	return cnf
}

// WithLogger sets the logger. The default is the package Logger.
func WithLogger(l *zap.Logger) Option {
	return func(cnf *config) {
		cnf.logger = l
	}
}

// WithControlFlow sets the control flow in effect before the
// listener first changes it. The default is Poll.
func WithControlFlow(cf ControlFlow) Option {
	return func(cnf *config) {
		cnf.controlFlow = cf
	}
}

// WithReplaceListener controls whether Run may be called again to
// replace an installed listener. By default a second call fails with
// ErrListenerInstalled.
func WithReplaceListener(replace bool) Option {
	return func(cnf *config) {
		cnf.replaceListener = replace
	}
}

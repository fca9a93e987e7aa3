// SPDX-License-Identifier: Unlicense OR MIT

package app

import "gioui.org/evloop/io/event"

// Proxy sends user events to a Runner. Proxies are values; copies
// share the runner. A Proxy is safe for concurrent use and may be
// used from goroutines other than the one delivering events.
type Proxy struct {
	r *Runner
}

// SendEvent delivers an event.UserEvent carrying v, with the same
// ordering guarantees as events raised by the environment. It
// returns ErrClosed if the runner no longer delivers events.
func (p Proxy) SendEvent(v any) error {
	if p.r == nil || !p.r.send(event.UserEvent{Payload: v}) {
		return ErrClosed
	}
	return nil
}

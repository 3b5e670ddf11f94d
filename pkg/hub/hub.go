package hub

import (
	"log/slog"

	"github.com/aretw0/nerv/internal/logging"
)

// Handler receives the arguments passed to Fire.
type Handler func(args ...any)

// Hub is a synchronous named-event channel.
// It is not safe for concurrent use; handlers run inline on the goroutine that fires.
type Hub struct {
	events   map[string][]*Subscription
	promises map[string]*Promise
	taps     []*Subscription
	nextID   uint64
	logger   *slog.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger configures a logger for the Hub.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// New creates an empty Hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		events:   make(map[string][]*Subscription),
		promises: make(map[string]*Promise),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscription is the handle returned by Bind, Pipe and Tap.
type Subscription struct {
	hub     *Hub
	id      uint64
	event   string
	handler Handler
	target  *Promise
	filter  Filter
	tap     func(event string, args []any)
	active  bool
}

// Event returns the event name the subscription is bound to ("" for taps).
func (s *Subscription) Event() string {
	return s.event
}

// Active reports whether the subscription is still bound.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Unbind removes the subscription. Calling it more than once is a no-op.
func (s *Subscription) Unbind() {
	if !s.Active() {
		return
	}
	s.active = false
	if s.tap != nil {
		s.hub.taps = remove(s.hub.taps, s)
		return
	}
	list := remove(s.hub.events[s.event], s)
	if len(list) == 0 {
		delete(s.hub.events, s.event)
	} else {
		s.hub.events[s.event] = list
	}
}

func (s *Subscription) call(args []any) {
	if s.target == nil {
		s.handler(args...)
		return
	}
	if s.filter != nil {
		var ok bool
		if args, ok = s.filter(args); !ok {
			return
		}
	}
	s.target.Fire(args...)
}

// Bind attaches a handler to a named event.
func (h *Hub) Bind(event string, fn Handler) *Subscription {
	return h.add(&Subscription{event: event, handler: fn})
}

// Filter rewrites the arguments of a forwarded event. Returning false drops it.
type Filter func(args []any) ([]any, bool)

// Pipe forwards every fire of event on h into target.
func (h *Hub) Pipe(event string, target *Promise) *Subscription {
	return h.add(&Subscription{event: event, target: target})
}

// Forward is Pipe with a filter applied to each fire before it reaches target.
func (h *Hub) Forward(event string, target *Promise, filter Filter) *Subscription {
	return h.add(&Subscription{event: event, target: target, filter: filter})
}

// Unpipe removes the first binding of event that forwards into exactly target,
// whether it was installed by Pipe or Forward.
// It reports whether a binding was removed.
func (h *Hub) Unpipe(event string, target *Promise) bool {
	for _, s := range h.events[event] {
		if s.target == target {
			s.Unbind()
			return true
		}
	}
	return false
}

// Tap observes every event fired on h, after the event's own handlers ran.
func (h *Hub) Tap(fn func(event string, args []any)) *Subscription {
	h.nextID++
	s := &Subscription{hub: h, id: h.nextID, tap: fn, active: true}
	h.taps = append(h.taps, s)
	return s
}

func (h *Hub) add(s *Subscription) *Subscription {
	h.nextID++
	s.hub = h
	s.id = h.nextID
	s.active = true
	h.events[s.event] = append(h.events[s.event], s)
	return s
}

// Fire invokes every handler bound to event, in binding order.
// Bindings added while firing are not invoked by this call; bindings removed
// while firing are skipped.
func (h *Hub) Fire(event string, args ...any) *Hub {
	bound := h.events[event]
	if len(bound) > 0 {
		snapshot := make([]*Subscription, len(bound))
		copy(snapshot, bound)
		for _, s := range snapshot {
			if s.active {
				s.call(args)
			}
		}
	}
	if len(h.taps) > 0 {
		taps := make([]*Subscription, len(h.taps))
		copy(taps, h.taps)
		for _, s := range taps {
			if s.active {
				s.tap(event, args)
			}
		}
	}
	return h
}

// Count returns the number of active bindings for event.
func (h *Hub) Count(event string) int {
	return len(h.events[event])
}

// Promise returns the forwarding handle for event.
// The same pointer is returned for the same event name on the same hub, so it
// can be used as an identity when unpiping.
func (h *Hub) Promise(event string) *Promise {
	if p, ok := h.promises[event]; ok {
		return p
	}
	p := &Promise{hub: h, event: event}
	h.promises[event] = p
	return p
}

// Promise fires a fixed event on its hub.
type Promise struct {
	hub   *Hub
	event string
}

// Event returns the event the promise fires.
func (p *Promise) Event() string {
	return p.event
}

// Fire fires the promise's event on its hub with args.
func (p *Promise) Fire(args ...any) {
	p.hub.logger.Debug("forward", "event", p.event)
	p.hub.Fire(p.event, args...)
}

func remove(list []*Subscription, s *Subscription) []*Subscription {
	for i, item := range list {
		if item == s {
			out := make([]*Subscription, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

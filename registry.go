package herald

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Registry maps event keys to ordered listener sequences and dispatches
// events to them.
//
// Keys are materialized lazily: the first exact-key query, add, remove or
// emit creates an empty entry, which persists until RemoveEvent deletes it.
// Patterns only ever select among materialized keys.
//
// All methods are safe for concurrent use. The registry lock is never held
// while a callback runs, so callbacks may call back into the registry.
type Registry struct {
	entries         map[Key]*entry
	order           []Key
	onceReturnValue any
	logger          zerolog.Logger
	panicHandler    PanicHandler
	mu              sync.RWMutex
}

// New creates a new Registry with optional configuration.
// If no options are provided, the once-sentinel is true, logging is
// disabled and listener panics propagate.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:         make(map[Key]*entry),
		onceReturnValue: true,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the default Registry, creating it if necessary.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultOptMu.Lock()
		opts := defaultOptions
		defaultOptMu.Unlock()
		defaultRegistry = New(opts...)
	})
	return defaultRegistry
}

// AddListener registers l for target on the default instance.
func AddListener(target Target, l *Listener) *Registry {
	return Default().AddListener(target, l)
}

// AddOnceListener registers a one-shot l for target on the default instance.
func AddOnceListener(target Target, l *Listener) *Registry {
	return Default().AddOnceListener(target, l)
}

// RemoveListener removes l from target on the default instance.
func RemoveListener(target Target, l *Listener) *Registry {
	return Default().RemoveListener(target, l)
}

// Emit dispatches args to target's listeners on the default instance.
func Emit(target Target, args ...any) *Registry {
	return Default().Emit(target, args...)
}

// slot is one resolved target key with its live entry.
type slot struct {
	key   Key
	entry *entry
}

// resolve turns a target into the slots it addresses, materializing an
// exact key if needed. Must be called while holding r.mu write lock.
func (r *Registry) resolve(target Target) []slot {
	if key, ok := target.(Key); ok {
		return []slot{{key: key, entry: r.materialize(key)}}
	}
	return r.match(target)
}

// match returns the slots of materialized keys that target addresses,
// without materializing anything. Must be called while holding r.mu.
func (r *Registry) match(target Target) []slot {
	switch t := target.(type) {
	case Key:
		if e, ok := r.entries[t]; ok {
			return []slot{{key: t, entry: e}}
		}
		return nil
	case Pattern:
		var slots []slot
		for _, key := range r.order {
			ok, err := t.matches(key)
			if err != nil {
				r.logger.Debug().
					Err(err).
					Str("pattern", t.String()).
					Str("key", string(key)).
					Msg("Pattern match failed")
				continue
			}
			if ok {
				slots = append(slots, slot{key: key, entry: r.entries[key]})
			}
		}
		return slots
	}
	panic("herald: nil target")
}

// materialize returns the entry for key, creating an empty one if absent.
// Must be called while holding r.mu write lock.
func (r *Registry) materialize(key Key) *entry {
	if e, ok := r.entries[key]; ok {
		return e
	}
	e := &entry{}
	r.entries[key] = e
	r.order = append(r.order, key)
	r.logger.Debug().Str("key", string(key)).Msg("Defined event")
	return e
}

// deleteKey drops key and its listeners. Must be called while holding r.mu
// write lock.
func (r *Registry) deleteKey(key Key) {
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug().Str("key", string(key)).Msg("Removed event")
}

// insert appends rec to s unless its listener is already present.
// Must be called while holding r.mu write lock.
func (r *Registry) insert(s slot, rec *record) {
	if s.entry.indexOf(rec.listener) >= 0 {
		return
	}
	s.entry.records = append(s.entry.records, rec)
	rec.listener.join(r)
}

func mustListener(l *Listener) {
	if l == nil || l.callback == nil {
		panic("herald: nil listener")
	}
}

// Listeners returns a copy of key's listeners in registration order.
//
// Querying an unknown key materializes it with no listeners, so it becomes
// visible to patterns and Keys afterwards.
func (r *Registry) Listeners(key Key) []*Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.materialize(key).listeners()
}

// ListenersMatching returns the listeners of every materialized key that
// matches p. Keys that were never materialized are not considered.
func (r *Registry) ListenersMatching(p Pattern) map[Key][]*Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.match(p))
}

// ListenersAsMap returns target's listeners keyed by event key. An exact key
// yields a one-entry map (and is materialized); a pattern behaves as
// ListenersMatching.
func (r *Registry) ListenersAsMap(target Target) map[Key][]*Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return collect(r.resolve(target))
}

func collect(slots []slot) map[Key][]*Listener {
	out := make(map[Key][]*Listener, len(slots))
	for _, s := range slots {
		out[s.key] = s.entry.listeners()
	}
	return out
}

// Keys returns the materialized keys in the order they were created.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]Key, len(r.order))
	copy(keys, r.order)
	return keys
}

// Has reports whether l is registered under any key target addresses.
// Unlike Listeners it never materializes a key.
func (r *Registry) Has(target Target, l *Listener) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.match(target) {
		if s.entry.indexOf(l) >= 0 {
			return true
		}
	}
	return false
}

// DefineEvent materializes key with no listeners if it does not exist yet.
func (r *Registry) DefineEvent(key Key) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materialize(key)
	return r
}

// DefineEvents materializes each key in order.
func (r *Registry) DefineEvents(keys ...Key) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		r.materialize(key)
	}
	return r
}

// AddListener registers l under every key target addresses. A listener
// already present under a key is not added again.
func (r *Registry) AddListener(target Target, l *Listener) *Registry {
	return r.add(target, l, false)
}

// On is an alias for AddListener.
func (r *Registry) On(target Target, l *Listener) *Registry {
	return r.AddListener(target, l)
}

// AddOnceListener registers l so that it is removed right before it is
// invoked for the first time.
func (r *Registry) AddOnceListener(target Target, l *Listener) *Registry {
	return r.add(target, l, true)
}

// Once is an alias for AddOnceListener.
func (r *Registry) Once(target Target, l *Listener) *Registry {
	return r.AddOnceListener(target, l)
}

func (r *Registry) add(target Target, l *Listener, once bool) *Registry {
	mustListener(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.resolve(target) {
		r.insert(s, &record{listener: l, once: once})
	}
	return r
}

// RemoveListener removes l from every key target addresses. Keys that do not
// hold l are left untouched.
func (r *Registry) RemoveListener(target Target, l *Listener) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.resolve(target) {
		s.entry.remove(l)
	}
	return r
}

// Off is an alias for RemoveListener.
func (r *Registry) Off(target Target, l *Listener) *Registry {
	return r.RemoveListener(target, l)
}

// RemoveEvent deletes keys and all of their listeners. A Key deletes that
// entry, a Pattern deletes every materialized key it matches, and calling it
// with no targets clears the whole registry.
func (r *Registry) RemoveEvent(targets ...Target) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(targets) == 0 {
		r.entries = make(map[Key]*entry)
		r.order = nil
		r.logger.Debug().Msg("Removed all events")
		return r
	}

	for _, target := range targets {
		for _, s := range r.match(target) {
			r.deleteKey(s.key)
		}
	}
	return r
}

// RemoveAllListeners is an alias for RemoveEvent.
func (r *Registry) RemoveAllListeners(targets ...Target) *Registry {
	return r.RemoveEvent(targets...)
}

// detach removes l from every key.
func (r *Registry) detach(l *Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range r.order {
		r.entries[key].remove(l)
	}
}

// SetOnceReturnValue sets the once-sentinel used by subsequent emissions.
func (r *Registry) SetOnceReturnValue(value any) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onceReturnValue = value
	return r
}

// OnceReturnValue returns the current once-sentinel.
func (r *Registry) OnceReturnValue() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.onceReturnValue
}

// Stats returns key and listener counts for the registry.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Keys:           len(r.entries),
		ListenerCounts: make(map[Key]int, len(r.entries)),
	}
	for key, e := range r.entries {
		stats.ListenerCounts[key] = len(e.records)
	}
	return stats
}

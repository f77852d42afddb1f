package herald

import "reflect"

// Emit dispatches args to the listeners of every key target addresses.
// It is the variadic form of EmitEvent.
func (r *Registry) Emit(target Target, args ...any) *Registry {
	return r.EmitEvent(target, args)
}

// Trigger is an alias for EmitEvent.
func (r *Registry) Trigger(target Target, args []any) *Registry {
	return r.EmitEvent(target, args)
}

// EmitEvent dispatches args to the listeners of every key target addresses,
// key by key in materialization order and listener by listener in
// registration order.
//
// Each key's listener sequence is copied before its first listener runs, so
// listeners added or removed during the emission do not change who is called
// for that key. One-shot listeners are removed before they are invoked. Any
// other listener whose callback returns the once-sentinel is removed after
// the call.
func (r *Registry) EmitEvent(target Target, args []any) *Registry {
	r.mu.Lock()
	slots := r.resolve(target)
	keys := make([]Key, len(slots))
	for i, s := range slots {
		keys[i] = s.key
	}
	r.mu.Unlock()

	r.logger.Trace().
		Str("target", target.String()).
		Int("keys", len(keys)).
		Int("args", len(args)).
		Msg("Emitting event")

	for _, key := range keys {
		r.dispatch(key, args)
	}
	return r
}

// dispatch invokes a snapshot of key's listeners.
func (r *Registry) dispatch(key Key, args []any) {
	// Copy record slice while holding lock; invoke without it
	r.mu.RLock()
	e, ok := r.entries[key]
	if !ok {
		r.mu.RUnlock()
		return
	}
	snapshot := make([]*record, len(e.records))
	copy(snapshot, e.records)
	r.mu.RUnlock()

	for _, rec := range snapshot {
		if rec.once {
			r.removeFrom(key, rec.listener)
		}

		ret, ok := r.invoke(key, rec.listener, args)
		if !ok || rec.once {
			continue
		}

		if sameValue(ret, r.OnceReturnValue()) {
			r.removeFrom(key, rec.listener)
			r.logger.Debug().
				Str("key", string(key)).
				Msg("Listener returned once value, removed")
		}
	}
}

// invoke calls the listener's callback. ok is false if the callback
// panicked and the panic was recovered by the panic handler.
func (r *Registry) invoke(key Key, l *Listener, args []any) (ret any, ok bool) {
	if r.panicHandler != nil {
		defer func() {
			if recovered := recover(); recovered != nil {
				r.logger.Debug().
					Str("key", string(key)).
					Interface("panic", recovered).
					Msg("Listener panicked")
				r.panicHandler(key, recovered)
			}
		}()
	}
	return l.callback(r, args...), true
}

// removeFrom removes l from key's live sequence, if both still exist.
func (r *Registry) removeFrom(key Key, l *Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		e.remove(l)
	}
}

// sameValue reports whether a and b are equal interface values. Values that
// cannot be compared are never equal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	if va.Type() != reflect.TypeOf(b) || !va.Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

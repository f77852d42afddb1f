package herald

import "sort"

// AddListeners registers each listener under every key target addresses,
// in the order given.
func (r *Registry) AddListeners(target Target, listeners ...*Listener) *Registry {
	return r.manipulate(false, target, listeners)
}

// RemoveListeners removes each listener from every key target addresses.
func (r *Registry) RemoveListeners(target Target, listeners ...*Listener) *Registry {
	return r.manipulate(true, target, listeners)
}

// AddListenerMap registers listeners per key. Keys are processed in sorted
// order so that newly materialized keys get a stable order.
func (r *Registry) AddListenerMap(m map[Key][]*Listener) *Registry {
	return r.manipulateMap(false, m)
}

// RemoveListenerMap removes listeners per key.
func (r *Registry) RemoveListenerMap(m map[Key][]*Listener) *Registry {
	return r.manipulateMap(true, m)
}

func (r *Registry) manipulate(remove bool, target Target, listeners []*Listener) *Registry {
	if !remove {
		for _, l := range listeners {
			mustListener(l)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.apply(remove, target, listeners)
	return r
}

func (r *Registry) manipulateMap(remove bool, m map[Key][]*Listener) *Registry {
	keys := make([]Key, 0, len(m))
	for key, listeners := range m {
		if !remove {
			for _, l := range listeners {
				mustListener(l)
			}
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		r.apply(remove, key, m[key])
	}
	return r
}

// apply adds or removes listeners on every slot target resolves to.
// Must be called while holding r.mu write lock.
func (r *Registry) apply(remove bool, target Target, listeners []*Listener) {
	for _, s := range r.resolve(target) {
		for _, l := range listeners {
			if remove {
				s.entry.remove(l)
				continue
			}
			r.insert(s, &record{listener: l})
		}
	}
}

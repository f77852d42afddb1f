package herald

import "sync"

// Listener wraps a Callback with an identity. The same *Listener registered
// twice under one key is stored once; two listeners wrapping the same
// function are distinct.
type Listener struct {
	callback   Callback
	registries map[*Registry]struct{}
	mu         sync.Mutex
}

// NewListener creates a Listener for the given callback.
// Panics if callback is nil.
func NewListener(callback Callback) *Listener {
	if callback == nil {
		panic("herald: nil callback")
	}
	return &Listener{callback: callback}
}

// Off removes this listener from every key of every registry it was added
// to. Safe to call multiple times or on a listener that was never added.
func (l *Listener) Off() {
	l.mu.Lock()
	joined := l.registries
	l.registries = nil
	l.mu.Unlock()

	for r := range joined {
		r.detach(l)
	}
}

// join records that l was inserted into r. Called with r.mu held; l.mu is
// never held while acquiring a registry lock.
func (l *Listener) join(r *Registry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.registries == nil {
		l.registries = make(map[*Registry]struct{})
	}
	l.registries[r] = struct{}{}
}

// record is a listener as stored under one key.
type record struct {
	listener *Listener
	once     bool
}

// entry holds the ordered records for one materialized key.
type entry struct {
	records []*record
}

// indexOf returns the position of the record holding l, or -1.
func (e *entry) indexOf(l *Listener) int {
	for i, rec := range e.records {
		if rec.listener == l {
			return i
		}
	}
	return -1
}

// remove deletes the record holding l, preserving order.
// Returns false if l was not present.
func (e *entry) remove(l *Listener) bool {
	i := e.indexOf(l)
	if i < 0 {
		return false
	}
	e.records = append(e.records[:i], e.records[i+1:]...)
	return true
}

// listeners returns a copy of the entry's listeners in order.
func (e *entry) listeners() []*Listener {
	out := make([]*Listener, len(e.records))
	for i, rec := range e.records {
		out[i] = rec.listener
	}
	return out
}

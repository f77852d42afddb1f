// Package herald provides a synchronous, in-process event registry for Go.
//
// Listeners are registered against event keys, either by exact name or by
// regular-expression pattern, and invoked in registration order when an event
// is emitted. One-shot listeners remove themselves after firing, and any
// listener can request its own removal by returning the registry's
// once-sentinel (true by default).
//
// Quick example:
//
//	r := herald.New()
//	greet := herald.NewListener(func(_ *herald.Registry, args ...any) any {
//	    name, _ := herald.Arg[string](args, 0)
//	    fmt.Println("hello", name)
//	    return nil
//	})
//
//	r.AddListener(herald.Key("user.joined"), greet).
//	    Emit(herald.Key("user.joined"), "ada")
//
//	// Fan out to every materialized key matching a pattern.
//	r.Emit(herald.Match(regexp.MustCompile(`^user\.`)), "grace")
//
// Dispatch always runs in the caller's goroutine. Listeners may re-enter the
// registry; each emission iterates over a snapshot of the listener sequence,
// so listeners added or removed mid-emission do not affect it.
package herald

// Callback is the function behind a Listener. It receives the registry that
// dispatched the event and the emitted arguments. Returning a value equal to
// the registry's once-sentinel removes the listener.
type Callback func(r *Registry, args ...any) any

// Target addresses one or more event keys. It is either a Key or a Pattern.
type Target interface {
	// String returns a printable form of the target for logs.
	String() string

	isTarget()
}

// Key is an exact event key.
type Key string

// String returns the key name.
func (k Key) String() string { return string(k) }

func (Key) isTarget() {}

// Stats provides a point-in-time view of a Registry.
type Stats struct {
	// Keys is the number of materialized event keys, including empty ones.
	Keys int

	// ListenerCounts maps each materialized key to its number of listeners.
	ListenerCounts map[Key]int
}

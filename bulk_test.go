package herald

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddListenersOrder(t *testing.T) {
	r := New()
	a, b, c := NewListener(noop), NewListener(noop), NewListener(noop)

	r.AddListeners(Key("k"), a, b, c, a)

	assert.Equal(t, []*Listener{a, b, c}, r.Listeners(Key("k")))
}

func TestRemoveListeners(t *testing.T) {
	r := New()
	a, b, c := NewListener(noop), NewListener(noop), NewListener(noop)
	r.AddListeners(Key("k"), a, b, c)

	r.RemoveListeners(Key("k"), a, c)

	assert.Equal(t, []*Listener{b}, r.Listeners(Key("k")))
}

func TestAddListenersPattern(t *testing.T) {
	r := New()
	r.DefineEvents("bar", "baz", "foo")
	a, b := NewListener(noop), NewListener(noop)

	r.AddListeners(Match(regexp.MustCompile(`^ba`)), a, b)

	assert.Equal(t, []*Listener{a, b}, r.Listeners(Key("bar")))
	assert.Equal(t, []*Listener{a, b}, r.Listeners(Key("baz")))
	assert.Empty(t, r.Listeners(Key("foo")))
}

func TestAddListenersPatternNoKeys(t *testing.T) {
	r := New()

	r.AddListeners(Match(regexp.MustCompile(`.*`)), NewListener(noop))

	assert.Empty(t, r.Keys(), "patterns never create keys")
}

func TestAddListenersNil(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		r.AddListeners(Key("k"), NewListener(noop), nil)
	})
	assert.Empty(t, r.Keys(), "nothing applied when a listener is invalid")
}

func TestListenerMap(t *testing.T) {
	r := New()
	a, b, c := NewListener(noop), NewListener(noop), NewListener(noop)

	r.AddListenerMap(map[Key][]*Listener{
		"zeta":  {a},
		"alpha": {b, c},
	})

	assert.Equal(t, []Key{"alpha", "zeta"}, r.Keys(), "map keys applied in sorted order")
	assert.Equal(t, []*Listener{b, c}, r.Listeners(Key("alpha")))
	assert.Equal(t, []*Listener{a}, r.Listeners(Key("zeta")))

	r.RemoveListenerMap(map[Key][]*Listener{
		"alpha": {c},
		"zeta":  {a},
	})

	assert.Equal(t, []*Listener{b}, r.Listeners(Key("alpha")))
	assert.Empty(t, r.Listeners(Key("zeta")))
}

func TestRemoveListenersPatternThenEmit(t *testing.T) {
	r := New()
	var calls []string
	keep := recorder(&calls, "keep", nil)
	drop := recorder(&calls, "drop", nil)
	r.AddListeners(Key("job.start"), keep, drop).
		AddListeners(Key("job.stop"), keep, drop)

	r.RemoveListeners(Match(regexp.MustCompile(`^job\.`)), drop).
		Emit(Match(regexp.MustCompile(`^job\.`)))

	assert.Equal(t, []string{"keep", "keep"}, calls)
}

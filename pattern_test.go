package herald

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchNil(t *testing.T) {
	assert.PanicsWithValue(t, "herald: nil pattern", func() {
		Match(nil)
	})
}

func TestPatternString(t *testing.T) {
	tests := []struct {
		name     string
		pattern  Pattern
		expected string
	}{
		{
			name:     "re2",
			pattern:  Match(regexp.MustCompile(`^user\.`)),
			expected: `^user\.`,
		},
		{
			name:     "ecma",
			pattern:  MustMatchECMA(`^user(?!\.admin)`),
			expected: `^user(?!\.admin)`,
		},
		{
			name:     "zero",
			pattern:  Pattern{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pattern.String())
		})
	}
}

func TestMatchECMAInvalid(t *testing.T) {
	_, err := MatchECMA(`(unclosed`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "herald: compile pattern")

	assert.Panics(t, func() { MustMatchECMA(`(unclosed`) })
}

func TestMatchECMALookahead(t *testing.T) {
	r := New()
	r.DefineEvents("user.joined", "user.admin.joined", "order.placed")

	got := r.ListenersMatching(MustMatchECMA(`^user\.(?!admin)`))

	assert.Len(t, got, 1)
	assert.Contains(t, got, Key("user.joined"))
}

func TestMatchECMABackreference(t *testing.T) {
	r := New()
	var calls []string
	r.AddListener(Key("ping.ping"), recorder(&calls, "ping.ping", nil))
	r.AddListener(Key("ping.pong"), recorder(&calls, "ping.pong", nil))

	r.Emit(MustMatchECMA(`^(\w+)\.\1$`))

	assert.Equal(t, []string{"ping.ping"}, calls)
}

func TestZeroPatternMatchesNothing(t *testing.T) {
	r := New()
	r.DefineEvents("a", "b")

	assert.Empty(t, r.ListenersMatching(Pattern{}))
}

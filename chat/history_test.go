package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func turns(contents ...string) []Turn {
	out := make([]Turn, len(contents))
	for i, c := range contents {
		out[i] = Turn{Role: RoleUser, Content: c}
	}
	return out
}

func TestAppendCapped(t *testing.T) {
	h := appendCapped(nil, 4, turns("a", "b")...)
	assert.Len(t, h, 2)

	h = appendCapped(h, 4, turns("c", "d", "e")...)
	assert.Len(t, h, 4)
	assert.Equal(t, "b", h[0].Content)
	assert.Equal(t, "e", h[3].Content)
}

func TestAppendCappedUnbounded(t *testing.T) {
	h := appendCapped(turns("a", "b", "c"), 0, turns("d")...)
	assert.Len(t, h, 4)
}

func TestRecentWindow(t *testing.T) {
	h := turns("a", "b", "c", "d")

	assert.Nil(t, recentWindow(h, 0))
	assert.Nil(t, recentWindow(nil, 3))
	assert.Equal(t, turns("c", "d"), recentWindow(h, 2))
	assert.Equal(t, h, recentWindow(h, 10))
}

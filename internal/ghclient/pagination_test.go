package ghclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLinkHeader covers the relation formats the REST API emits.
func TestParseLinkHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected map[string]string
	}{
		{
			name:   "next and last",
			header: `<https://api.github.com/repos/o/r/pulls?page=2>; rel="next", <https://api.github.com/repos/o/r/pulls?page=9>; rel="last"`,
			expected: map[string]string{
				"next": "https://api.github.com/repos/o/r/pulls?page=2",
				"last": "https://api.github.com/repos/o/r/pulls?page=9",
			},
		},
		{
			name:   "prev first next last",
			header: `<u1>; rel="prev", <u2>; rel="first", <u3>; rel="next", <u4>; rel="last"`,
			expected: map[string]string{
				"prev": "u1", "first": "u2", "next": "u3", "last": "u4",
			},
		},
		{
			name:     "empty header",
			header:   "",
			expected: map[string]string{},
		},
		{
			name:     "malformed segment skipped",
			header:   `garbage, <u1>; rel="next"`,
			expected: map[string]string{"next": "u1"},
		},
		{
			name:     "missing rel attribute",
			header:   `<u1>; title="whatever"`,
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLinkHeader(tt.header))
		})
	}
}

// TestHasNextPage checks continuation detection.
func TestHasNextPage(t *testing.T) {
	assert.True(t, hasNextPage(`<u>; rel="next"`))
	assert.False(t, hasNextPage(`<u>; rel="last"`))
	assert.False(t, hasNextPage(""))
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	n, err := ParseCount("", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = ParseCount("7", 20)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = ParseCount("0", 20)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, bad := range []string{"abc", "12.5", "1e3", "-1", " 5"} {
		_, err := ParseCount(bad, 20)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", 0))
	assert.Equal(t, -3, ParseInt("-3", 0))
	assert.Equal(t, 9, ParseInt("junk", 9))
	assert.Equal(t, 9, ParseInt("", 9))
}

package util_test

import (
	"testing"

	"makemeet/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	first, err := util.RandomString(32)
	require.NoError(t, err)
	second, err := util.RandomString(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "=")
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}

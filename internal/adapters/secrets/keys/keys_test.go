package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	t.Parallel()

	got, err := Entry("pacer://maya/credential")
	require.NoError(t, err)
	assert.Equal(t, "pacer/maya/credential", got)

	got, err = Entry("legacy/maya")
	require.NoError(t, err)
	assert.Equal(t, "legacy/maya", got)

	for _, bad := range []string{"", "  ", "/abs/path", "../escape", "pacer://", "://x", "pacer://../../etc", `a\b`} {
		_, err := Entry(bad)
		assert.Error(t, err, bad)
	}
}

package identifier_test

import (
	"errors"
	"testing"

	"stillhouse/shared/identifier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestNew_NeverEmpty(t *testing.T) {
	id := identifier.New()

	require.NotEmpty(t, id)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNew_FallbackWhenRandomSourceFails(t *testing.T) {
	uuid.SetRand(failingReader{})
	defer uuid.SetRand(nil)

	const n = 1000

	seen := make(map[string]struct{}, n)

	for range n {
		id := identifier.New()

		require.NotEmpty(t, id)
		assert.Regexp(t, `^id-[0-9a-z]+-[0-9a-z]+$`, id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %s", id)

		seen[id] = struct{}{}
	}
}

func TestNew_NoDuplicates(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)

	for range n {
		id := identifier.New()

		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %s", id)

		seen[id] = struct{}{}
	}
}

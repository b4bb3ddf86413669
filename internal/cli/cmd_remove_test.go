package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAfterConfirmation(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	seedOneRow(t, r)

	stdout, _, code := r.Run("y\n", "remove", "1")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `delete bookmark 1 titled "Example"?`)
	assert.Contains(t, stdout, "Removed bookmark 1.")
	assert.Nil(t, r.LoadStore().Table.Get(1))
}

func TestRemoveDeclinedLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	seedOneRow(t, r)

	stdout, stderr, code := r.Run("n\n", "remove", "1")

	assert.Equal(t, 0, code, "declining is not an error")
	assert.Empty(t, stderr)
	assert.NotContains(t, stdout, "Removed")
	assert.NotNil(t, r.LoadStore().Table.Get(1))
}

func TestRemoveEOFDeclines(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	seedOneRow(t, r)

	_, _, code := r.Run("", "remove", "1")

	assert.Equal(t, 0, code)
	assert.NotNil(t, r.LoadStore().Table.Get(1))
}

func TestRemoveUnknownRow(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	r.SeedEmpty()

	stderr := r.MustFail("", "remove", "7")
	assert.Contains(t, stderr, "bookmark not found")
}

func TestRemoveRejectsNonNumericID(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	r.SeedEmpty()

	stderr := r.MustFail("", "remove", "first")
	assert.Contains(t, stderr, "must be a bookmark ID")
}

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenHandsURLToOpener(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	seedOneRow(t, r)

	var opened string

	r.OpenURL = func(url string) error {
		opened = url

		return nil
	}

	r.MustRun("", "open", "1")

	assert.Equal(t, "https://example.com", opened)
}

func TestOpenOpenerFailure(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	seedOneRow(t, r)
	r.OpenURL = func(string) error {
		return errors.New("no browser available")
	}

	stderr := r.MustFail("", "open", "1")
	assert.Contains(t, stderr, "no browser available")
}

func TestOpenUnknownRow(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	r.SeedEmpty()

	stderr := r.MustFail("", "open", "7")
	assert.Contains(t, stderr, "bookmark not found")
}

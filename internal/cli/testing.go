package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sbm/internal/store"
)

// CLI provides a clean interface for running commands in tests. It manages
// a temp directory holding the store file and stubbed collaborators.
type CLI struct {
	t   *testing.T
	Dir string

	// FetchTitle and OpenURL back the stubbed Deps; tests override them
	// before calling Run.
	FetchTitle func(url string) (string, error)
	OpenURL    func(url string) error
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		FetchTitle: func(string) (string, error) {
			return "", fmt.Errorf("no title fetcher stubbed")
		},
		OpenURL: func(string) error {
			return fmt.Errorf("no opener stubbed")
		},
	}
}

// StorePath returns the store file path inside the temp directory.
func (r *CLI) StorePath() string {
	return filepath.Join(r.Dir, "data.json")
}

// Run executes one command against the temp store and returns stdout,
// stderr, and the exit code. stdin feeds confirmation prompts.
func (r *CLI) Run(stdin string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	o := NewIO(&outBuf, &errBuf)

	op, err := Parse(args)
	if err != nil {
		o.Errorf("%v", err)

		return outBuf.String(), errBuf.String(), 1
	}

	deps := Deps{
		Confirm:    confirmReader(strings.NewReader(stdin), &outBuf),
		FetchTitle: r.FetchTitle,
		OpenURL:    r.OpenURL,
	}

	code := run(o, r.StorePath(), op, deps)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes a command and fails the test on a non-zero exit.
// Returns trimmed stdout.
func (r *CLI) MustRun(stdin string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimRight(stdout, " \t\n")
}

// MustFail executes a command and fails the test if it succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(stdin string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(stdin, args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// Seed writes a store built by fn to the temp store file.
func (r *CLI) Seed(fn func(st *store.Store)) {
	r.t.Helper()

	st := store.New()
	fn(st)

	if err := store.Save(r.StorePath(), st); err != nil {
		r.t.Fatalf("seeding store: %v", err)
	}
}

// SeedEmpty writes an empty store so commands skip first-run setup.
func (r *CLI) SeedEmpty() {
	r.t.Helper()
	r.Seed(func(*store.Store) {})
}

// LoadStore reads the temp store file back.
func (r *CLI) LoadStore() *store.Store {
	r.t.Helper()

	st, err := store.Load(r.StorePath())
	if err != nil {
		r.t.Fatalf("loading store: %v", err)
	}

	return st
}

// StoreExists reports whether the store file has been created.
func (r *CLI) StoreExists() bool {
	_, err := os.Stat(r.StorePath())

	return err == nil
}

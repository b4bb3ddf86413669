package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"sbm/internal/browser"
	"sbm/internal/title"
)

// Deps carries the external collaborators the interpreter blocks on. Tests
// swap in stubs; production wiring happens in defaultDeps.
type Deps struct {
	// Confirm asks a default-no yes/no question. Only an explicit yes
	// returns true; any other answer (including EOF) declines.
	Confirm func(prompt string) (bool, error)

	// FetchTitle derives a title from the page behind url.
	FetchTitle func(url string) (string, error)

	// OpenURL hands url to the platform's default handler.
	OpenURL func(url string) error
}

func defaultDeps(ctx context.Context, stdin io.Reader, out io.Writer) Deps {
	return Deps{
		Confirm: newConfirmer(stdin, out),
		FetchTitle: func(url string) (string, error) {
			return title.Fetch(ctx, title.DefaultClient, url)
		},
		OpenURL: browser.Open,
	}
}

// newConfirmer picks the prompt implementation: liner when talking to a
// real terminal, a plain reader for pipes and tests.
func newConfirmer(stdin io.Reader, out io.Writer) func(string) (bool, error) {
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		return confirmTerminal
	}

	return confirmReader(stdin, out)
}

func confirmTerminal(prompt string) (bool, error) {
	state := liner.NewLiner()
	defer state.Close()

	state.SetCtrlCAborts(true)

	answer, err := state.Prompt(prompt + " [Y/n] ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}

		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	return isYes(answer), nil
}

func confirmReader(stdin io.Reader, out io.Writer) func(string) (bool, error) {
	reader := bufio.NewReader(stdin)

	return func(prompt string) (bool, error) {
		_, _ = fmt.Fprintf(out, "%s [Y/n] ", prompt)

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// EOF with nothing typed declines.
			return false, nil
		}

		return isYes(line), nil
	}
}

func isYes(answer string) bool {
	answer = strings.TrimSpace(answer)

	return answer == "y" || answer == "Y"
}

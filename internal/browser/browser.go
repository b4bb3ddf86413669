// Package browser hands a URL to the platform's default handler.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrOpenFailed means the platform launcher reported a nonzero status.
var ErrOpenFailed = errors.New("could not open URL")

// Open blocks until the launcher exits and reports its status.
func Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return nil
}

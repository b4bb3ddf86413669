// Package title derives a bookmark title from the page behind a URL. It is
// a best-effort collaborator: every failure is non-fatal and the caller
// falls back to an empty title with a warning.
package title

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	// ErrNoTitle means the page had no usable <title> element.
	ErrNoTitle = errors.New("no <title> tag in page")

	errBadStatus = errors.New("unexpected HTTP status")
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "sbm/1.0"

	// maxBodyBytes bounds how much of a page is read when no title marker
	// ever shows up.
	maxBodyBytes = 512 << 10

	readChunk = 8 << 10
)

// DefaultClient follows redirects and gives up after fetchTimeout.
var DefaultClient = &http.Client{Timeout: fetchTimeout}

// Fetch downloads url with one blocking GET and extracts its title.
// Reading stops early once a closing title or header marker is seen; there
// is no point downloading the rest of the page.
func Fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%w: %s", errBadStatus, resp.Status)
	}

	head, err := readUntilMarker(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	return Extract(head)
}

// readUntilMarker accumulates the body until a closing </title> or
// </header> appears, the size cap is hit, or the body ends.
func readUntilMarker(body io.Reader) ([]byte, error) {
	buf := make([]byte, 0, readChunk)
	chunk := make([]byte, readChunk)

	for len(buf) < maxBodyBytes {
		n, err := body.Read(chunk)
		buf = append(buf, chunk[:n]...)

		lower := strings.ToLower(string(buf))
		if strings.Contains(lower, "</title>") || strings.Contains(lower, "</header>") {
			return buf, nil
		}

		if err == io.EOF {
			return buf, nil
		}

		if err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// Extract returns the text between the first <title> and </title> in the
// fragment. The tokenizer copes with malformed markup; a fragment with no
// title element is an ErrNoTitle.
func Extract(fragment []byte) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(string(fragment)))

	inTitle := false

	var text strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "", ErrNoTitle
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.TextToken:
			if inTitle {
				text.Write(tokenizer.Text())
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" {
				title := strings.TrimSpace(text.String())
				if title == "" {
					return "", ErrNoTitle
				}

				return title, nil
			}
		}
	}
}

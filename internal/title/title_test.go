package title

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{
			name: "plain",
			in:   `<html><head><title>Example Domain</title></head></html>`,
			want: "Example Domain",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "<title>\n\tExample Domain \n</title>",
			want: "Example Domain",
		},
		{
			name: "attributes on the tag",
			in:   `<title lang="en">Example</title>`,
			want: "Example",
		},
		{
			name:    "no title element",
			in:      `<html><body><h1>hi</h1></body></html>`,
			wantErr: ErrNoTitle,
		},
		{
			name:    "empty title",
			in:      `<title>   </title>`,
			wantErr: ErrNoTitle,
		},
		{
			name:    "closing tag without opening",
			in:      `</title><title>late</title>`,
			wantErr: ErrNoTitle,
		},
		{
			name:    "never closed",
			in:      `<title>half open`,
			wantErr: ErrNoTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Extract([]byte(tt.in))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`<html><head><title>Served Page</title></head><body></body></html>`))
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Served Page", got)
}

func TestFetchBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	assert.ErrorIs(t, err, errBadStatus)
}

func TestFetchStopsAfterTitleMarker(t *testing.T) {
	t.Parallel()

	// The handler hangs after the closing </title>; Fetch must not wait
	// for the rest of the body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Early Exit</title>`))

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		<-r.Context().Done()
	}))
	defer srv.Close()

	got, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Early Exit", got)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, srv.Client(), srv.URL)
	assert.Error(t, err)
}

func TestReadUntilMarkerCapsOversizedBody(t *testing.T) {
	t.Parallel()

	body := strings.NewReader(strings.Repeat("x", maxBodyBytes*2))

	buf, err := readUntilMarker(body)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(buf), maxBodyBytes+readChunk)
}

package store

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short unchanged", in: "hello", max: 10, want: "hello"},
		{name: "exactly max unchanged", in: "hello", max: 5, want: "hello"},
		{name: "one over", in: "hello!", max: 5, want: "he..."},
		{name: "empty", in: "", max: 5, want: ""},
		{name: "tiny max", in: "hello", max: 2, want: "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateLongValue(t *testing.T) {
	t.Parallel()

	in := strings.Repeat("x", TitleMax*2)
	got := Truncate(in, TitleMax)

	if len([]rune(got)) != TitleMax {
		t.Errorf("truncated length = %d, want %d", len([]rune(got)), TitleMax)
	}

	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("truncated value %q should end in %q", got, Ellipsis)
	}

	wantPrefix := in[:TitleMax-len(Ellipsis)]
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("truncated value %q should preserve prefix %q", got, wantPrefix)
	}
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, substr string
		want      bool
	}{
		{"Example Domain", "example", true},
		{"Example Domain", "DOMAIN", true},
		{"Example Domain", "main", true},
		{"Example Domain", "nope", false},
		{"", "", true},
		{"anything", "", true},
	}

	for _, tt := range tests {
		if got := ContainsFold(tt.s, tt.substr); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.s, tt.substr, got, tt.want)
		}
	}
}

package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"v1.2.0", "0123456789abcdef", "v1.2.0"},
		{"dev", "0123456789abcdef", "0123456"},
		{"", "abc", "abc"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Fatalf("Short(%q, %q) = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

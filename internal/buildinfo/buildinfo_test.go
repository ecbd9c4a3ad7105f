package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	cases := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"dev", "abc123", "abc123"},
		{"v1.0.0", "abc123", "v1.0.0"},
		{"", "", "dev"},
	}
	for _, c := range cases {
		Version, Commit = c.version, c.commit
		if got := Short(); got != c.want {
			t.Fatalf("Short() with version=%q commit=%q = %q, want %q", c.version, c.commit, got, c.want)
		}
	}
}

package build_test

import (
	"testing"

	"github.com/rohmanhakim/nps-scraper/internal/build"
)

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "default values",
			version: "dev",
			commit:  "none",
			want:    "dev+none",
		},
		{
			name:    "release with short commit",
			version: "0.3.1",
			commit:  "4f2a9c1",
			want:    "0.3.1+4f2a9c1",
		},
		{
			name:    "empty commit",
			version: "0.3.1",
			commit:  "",
			want:    "0.3.1+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := build.Version, build.Commit
			t.Cleanup(func() {
				build.Version, build.Commit = origVersion, origCommit
			})
			build.Version = tt.version
			build.Commit = tt.commit

			if got := build.FullVersion(); got != tt.want {
				t.Errorf("FullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

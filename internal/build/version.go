package build

// Set at link time with -ldflags "-X .../internal/build.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns "Version+Commit", e.g. "0.3.1+4f2a9c1". It backs
// the --version flag.
func FullVersion() string {
	return Version + "+" + Commit
}

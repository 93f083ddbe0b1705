package build

var (
	// Version is set during build via ldflags
	Version = "0.0.0-dev"
	// Timestamp is set during build via ldflags
	Timestamp = ""
	// GitCommit is set during build via ldflags
	GitCommit = ""
)

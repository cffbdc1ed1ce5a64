package version

// These variables are injected at build time with
//
//	-ldflags "-X github.com/jetstack/jwsign/pkg/version.Version=..."

// Version is the released version of jwsign.
var Version = "development"

// Commit is the commit hash of the build
var Commit string

// BuildDate is the date it was built
var BuildDate string

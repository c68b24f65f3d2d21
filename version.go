package trinity

import "fmt"

const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set with -ldflags "-X github.com/iov-one/trinity.GitCommit=..."
var GitCommit = ""

// Version is the release, followed by the commit when the build knows it.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}

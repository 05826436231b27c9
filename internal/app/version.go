package app

import "fmt"

// Build metadata, injected at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/nutrition-backend/internal/app.Version=1.4.0 \
//	  -X github.com/heartmarshall/nutrition-backend/internal/app.Commit=$(git rev-parse --short HEAD)" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is reported by /health and logged at startup.
func BuildVersion() string {
	if Commit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
}

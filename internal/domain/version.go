package domain

import "time"

// VersionInfo is the backend's build identity.
type VersionInfo struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	GitSHA      string `json:"git_sha"`
	BuildTime   string `json:"build_time"`
	Environment string `json:"environment"`
}

// DetailedVersionInfo adds build provenance for debugging.
type DetailedVersionInfo struct {
	VersionInfo
	GitBranch   string `json:"git_branch"`
	CommitCount int    `json:"commit_count"`
	DockerImage string `json:"docker_image,omitempty"`
	BuildHost   string `json:"build_host,omitempty"`
	BuildUser   string `json:"build_user,omitempty"`
}

// FallbackVersion is returned when the version endpoint is unreachable.
// The endpoint is non-critical; callers must not fail on it.
func FallbackVersion() VersionInfo {
	return VersionInfo{
		Status:      "unknown",
		Version:     "0.0.0-dev",
		GitSHA:      "unknown",
		BuildTime:   time.Now().UTC().Format(time.RFC3339),
		Environment: "unknown",
	}
}

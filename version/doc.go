// Package version reports the slackfs build version.
//
// Version, Commit and Date can be injected at build time:
//
//	-ldflags "-X github.com/dendrascience/slackfs/version.Version=v1.0.0 -X github.com/dendrascience/slackfs/version.Commit=abc123"
//
// When they are not set the values recorded by the Go toolchain in
// debug.ReadBuildInfo are used instead.
package version

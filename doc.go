// Package main provides the slackfs command-line interface.
//
// slackfs mounts a Slack workspace as a two-level FUSE filesystem: channels
// are directories and the files shared in them are regular files named
// "{id}_{name}". Files are listed and downloaded lazily and cached for the
// life of the process. New files are buffered in memory and uploaded when
// they are closed.
//
// Usage:
//
//	SLACK_TOKEN=xoxb-... slackfs MOUNTPOINT
package main

// Package cmd provides the command-line interface implementation for slackfs.
//
// It uses the Cobra library for command structure and Fang for styling. The
// root command takes a single MOUNTPOINT, loads configuration from the
// environment through the config package, builds the Slack client and the
// slackfs filesystem, and serves it with bazil.org/fuse until the mount is
// removed or the process is interrupted.
package cmd

package cmd

import (
	"github.com/dendrascience/slackfs/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the slackfs command. It takes a single mountpoint and
// serves the filesystem in the foreground until unmounted or interrupted.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slackfs MOUNTPOINT",
		Short: "Mount Slack channels and their files as a filesystem",
		Long: `slackfs mounts the Slack workspace behind SLACK_TOKEN at MOUNTPOINT.

Every channel is a directory and every file shared in it appears as
"{id}_{name}". Files created in a channel directory are uploaded when closed.

Environment:
  SLACK_TOKEN           API token (required)
  SLACK_PROXY           outbound proxy URL
  SLACK_API_URL         API base URL (default https://slack.com/api)
  SLACKFS_LOG_LEVEL     debug, info, warn or error (default error)
  SLACKFS_LOG_FORMAT    console or json (default console)
  SLACKFS_METRICS_ADDR  serve Prometheus metrics on this address`,
		Args: func(cmd *cobra.Command, args []string) error {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				return nil // Skip argument validation for version flag
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().BoolP("version", "v", false, "Show version information and exit")
	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag, _ := cmd.Flags().GetBool("version")
	if versionFlag {
		version.PrintVersion("slackfs")
		return nil
	}
	return runMount(cmd.Context(), args[0])
}

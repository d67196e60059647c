package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/releasedesk/internal/presentation"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured releases",
	Long: `Load the releases from the config file and print them as JSON or YAML.

Each release carries its id, version, start and released dates (yyyy-mm-dd),
description, progress and derived status (in_progress, unreleased, released).
An invalid seed release fails the command with the validation error.

Examples:
  releasedesk list
  releasedesk list -o yaml
  releasedesk list | jq '.[] | select(.status == "released") | .version'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := presentation.ParseFormat(listOutput)
		if err != nil {
			return err
		}

		cfg, _, err := loadConfig(cmd, false)
		if err != nil {
			return err
		}

		tp, err := newTracing(cfg.Tracing, debugEnabled())
		if err != nil {
			return err
		}
		defer shutdownTracing(tp)

		svc, err := newService(cfg, tp.Tracer())
		if err != nil {
			return err
		}
		defer svc.Close()

		formatter := presentation.NewFormatter(cmd.OutOrStdout(), format)
		return formatter.FormatReleases(presentation.FromReleases(svc.List()))
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "json", "output format: json or yaml")
	rootCmd.AddCommand(listCmd)
}

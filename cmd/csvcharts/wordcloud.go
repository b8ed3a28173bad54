package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newWordCloudCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordcloud",
		Short: "Print the keyword ranking once as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newAnalyticsService(a.cfg, a.logger, nil)
			if err != nil {
				return err
			}

			result, err := svc.WordCloud(cmd.Context())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode word cloud: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().Int("top-k", 0, "number of keywords to keep")
	a.bind("wordcloud.top_k", cmd.Flags().Lookup("top-k"))
	return cmd
}

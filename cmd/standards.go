package cmd

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

func newStandardsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List inspection standards",
		Long:  `Display every standard the record service grades inspections against, with its grain classes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			standards, err := opts.client.ListStandards(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(standards) == 0 {
				fmt.Fprintln(out, "No standards defined.")
				return nil
			}

			maxLen := 0
			for _, s := range standards {
				maxLen = max(maxLen, ansi.StringWidth(s.ID))
			}
			for _, s := range standards {
				fmt.Fprintf(out, "%-*s  %s\n", maxLen, s.ID, s.Name)
				for _, sub := range s.StandardData {
					fmt.Fprintf(out, "%-*s    %s (%g - %g)\n", maxLen, "", sub.Name, sub.MinLength, sub.MaxLength)
				}
			}
			return nil
		},
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/log"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete inspections",
		Long:  `Delete one or more inspection records in a single request. Asks for confirmation unless --yes is given.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Delete %d record(s)? This cannot be undone. [y/N] ", len(args))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := opts.client.DeleteHistory(cmd.Context(), args); err != nil {
				log.ErrorErr(log.CatHistory, "cli delete failed", err, "count", len(args))
				return fmt.Errorf("%s: %w", history.NoticeDeleteFailed, err)
			}
			fmt.Fprintln(out, history.NoticeDeleted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

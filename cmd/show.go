package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/mode/result"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one inspection result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			rec, err := opts.client.GetHistory(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, inspection.ErrNotFound) {
					return errors.New(history.NoticeNotFound)
				}
				return fmt.Errorf("%s: %w", history.NoticeFetchFailed, err)
			}
			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, rec)
			}
			fmt.Fprint(cmd.OutOrStdout(), result.PlainText(rec))
			return nil
		},
	}
	registerFormat(cmd, &format)
	return cmd
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/export"
	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/log"
)

// exportPageSize is the page size used to walk every matching record.
const exportPageSize = 100

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history sheets and inspection reports",
	}
	cmd.AddCommand(newExportHistoryCmd(opts), newExportReportCmd(opts))
	return cmd
}

func newExportHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		query  queryFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Write every matching record to an XLSX sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := query.coordinator(exportPageSize, time.Local)
			if err != nil {
				return err
			}

			var records []inspection.Record
			c, req := c.Search()
			for req != nil {
				if c, err = runQuery(cmd.Context(), opts.client, c, req); err != nil {
					return err
				}
				records = append(records, c.State().Items...)
				c, req = c.NextPage()
			}
			if len(records) == 0 {
				return errors.New("no records match")
			}

			path := opts.exportPath(output, "history", "xlsx")
			err = export.ToFile(path, func(w io.Writer) error {
				return export.WriteHistoryXLSX(w, records)
			})
			if err != nil {
				return err
			}
			log.Info(log.CatExport, "history exported", "path", path, "count", len(records))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(records), path)
			return nil
		},
	}
	query.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <export.dir>/history-<timestamp>.xlsx)")
	return cmd
}

func newExportReportCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Write one inspection as a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := opts.client.GetHistory(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, inspection.ErrNotFound) {
					return errors.New(history.NoticeNotFound)
				}
				return fmt.Errorf("%s: %w", history.NoticeFetchFailed, err)
			}

			now := time.Now()
			prefix := "report-" + rec.ID
			if i := strings.IndexByte(rec.ID, '-'); i > 0 {
				prefix = "report-" + rec.ID[:i]
			}
			path := opts.exportPath(output, prefix, "pdf")
			err = export.ToFile(path, func(w io.Writer) error {
				return export.WriteReportPDF(w, rec, export.ReportOptions{
					FontFile:  opts.cfg.Export.FontFile,
					Generated: now,
				})
			})
			if err != nil {
				return err
			}
			log.Info(log.CatExport, "report exported", "path", path, "id", rec.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <export.dir>/report-<id>-<timestamp>.pdf)")
	return cmd
}

// exportPath returns output, or a timestamped name in export.dir.
func (o *rootOptions) exportPath(output, prefix, ext string) string {
	if output != "" {
		return output
	}
	dir := o.cfg.Export.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, export.FileName(prefix, ext, time.Now()))
}

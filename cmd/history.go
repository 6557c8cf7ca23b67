package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zjrosen/riceinspect/internal/history"
	"github.com/zjrosen/riceinspect/internal/inspection"
)

// queryFlags are the history filters shared by history and export history.
type queryFlags struct {
	id   string
	from string
	to   string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.id, "id", "", "look up one inspection id; wins over --from/--to")
	cmd.Flags().StringVar(&q.from, "from", "", `inclusive lower bound, "YYYY-MM-DD HH:mm:ss" local time`)
	cmd.Flags().StringVar(&q.to, "to", "", `inclusive upper bound, "YYYY-MM-DD HH:mm:ss" local time`)
}

// coordinator returns a coordinator with the draft filters applied.
func (q queryFlags) coordinator(pageSize int, loc *time.Location) (history.Coordinator, error) {
	c := history.New(pageSize).SetSearchID(q.id)
	from, to, err := inspection.ParseRange(q.from, q.to, loc)
	if err != nil {
		var verr *inspection.ValidationError
		if errors.As(err, &verr) {
			return c, errors.New(verr.Message("dateRange"))
		}
		return c, err
	}
	if from != nil {
		c = c.SetDateRange(&history.DateRange{From: *from, To: *to})
	}
	return c, nil
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		query  queryFlags
		page   int
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List inspection history",
		Long: `List inspection records newest first, one page at a time.

Filter by a single id with --id, or by creation date with --from and --to.
Both bounds are inclusive and read in local time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if limit <= 0 {
				limit = opts.cfg.History.PageSize
			}
			c, err := query.coordinator(limit, time.Local)
			if err != nil {
				return err
			}

			c, req := c.Search()
			if c, err = runQuery(cmd.Context(), opts.client, c, req); err != nil {
				return err
			}
			if page > 1 {
				c, req = c.PageChange(page, limit)
				if c, err = runQuery(cmd.Context(), opts.client, c, req); err != nil {
					return err
				}
			}

			if format != formatText {
				return writeStructured(cmd.OutOrStdout(), format, newHistoryOutput(c))
			}
			writeHistory(cmd.OutOrStdout(), c)
			return nil
		},
	}
	query.register(cmd)
	registerFormat(cmd, &format)
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "rows per page (default history.page_size)")
	return cmd
}

// runQuery runs req and every follow-up request Apply hands back.
func runQuery(ctx context.Context, svc history.Service, c history.Coordinator, req *history.Request) (history.Coordinator, error) {
	for req != nil {
		resp := req.Run(ctx, svc)
		c, req = c.Apply(resp)
		if n := c.Notice(); n.Level == history.NoticeError {
			return c, fmt.Errorf("%s: %w", n.Text, resp.Err)
		}
	}
	return c, nil
}

// historyOutput is the json and yaml form of one history page.
type historyOutput struct {
	Filter    string              `json:"filter"`
	Summary   string              `json:"summary"`
	Page      int                 `json:"page"`
	PageCount int                 `json:"pageCount"`
	PageSize  int                 `json:"pageSize"`
	Total     int                 `json:"total"`
	Items     []inspection.Record `json:"items"`
}

func newHistoryOutput(c history.Coordinator) historyOutput {
	state := c.State()
	items := state.Items
	if items == nil {
		items = []inspection.Record{}
	}
	return historyOutput{
		Filter:    state.Filter.Label(),
		Summary:   c.Summary(),
		Page:      state.Page,
		PageCount: c.PageCount(),
		PageSize:  state.PageSize,
		Total:     state.Total,
		Items:     items,
	}
}

func writeHistory(out io.Writer, c history.Coordinator) {
	state := c.State()
	if len(state.Items) == 0 {
		fmt.Fprintln(out, "No data")
	} else {
		header := []string{"Create Date", "Inspection ID", "Name", "Standard", "Note"}
		rows := make([][]string, 0, len(state.Items))
		for _, r := range state.Items {
			rows = append(rows, []string{
				inspection.FormatTime(r.CreatedAt), r.ID, r.Name, r.StandardLabel(), r.NoteLabel(),
			})
		}
		writeColumns(out, header, rows)
	}
	fmt.Fprintf(out, "\nFilter: %s · %s · Page %d/%d\n",
		state.Filter.Label(), c.Summary(), state.Page, c.PageCount())
}

// writeColumns prints rows left-aligned under header, two spaces apart.
func writeColumns(out io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-ansi.StringWidth(cell))
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	line(header)
	for _, row := range rows {
		line(row)
	}
}

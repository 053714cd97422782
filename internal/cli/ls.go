package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/listsync"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var (
		page   int
		sortBy string
		order  string
		query  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print one page of todos",
		Args:    exactArgs(0, "todo ls [--page N] [--sort due_date|title] [--order asc|desc] [-q text] [--json]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := app.savedQuery()
			q.Page = page
			q.Query = query
			if cmd.Flags().Changed("sort") {
				f, err := model.ParseSortField(sortBy)
				if err != nil {
					return usageError{err: err}
				}
				q.SortBy = f
			}
			if cmd.Flags().Changed("order") {
				o, err := model.ParseSortOrder(order)
				if err != nil {
					return usageError{err: err}
				}
				q.SortOrder = o
			}
			if q.Page < 1 {
				return usagef("page must be at least 1, got %d", q.Page)
			}

			s := listsync.NewSession(cmd.Context(), listsync.NewFetcher(app.client, app.log), q)
			st := s.State()
			if st.Err != nil {
				return st.Err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st.Result)
			}
			renderList(cmd.OutOrStdout(), st)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort field (due_date|title; default: saved preference)")
	cmd.Flags().StringVar(&order, "order", "", "Sort order (asc|desc; default: saved preference)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search over title and description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw page as JSON")
	return cmd
}

func renderList(w io.Writer, st listsync.State) {
	t := ui.Current()
	q := st.Query

	header := fmt.Sprintf("%s  %s %s %s  %s %d",
		t.Title.Render("Todos"),
		t.Accent.Render("Sort"), q.SortBy.Label(), q.SortOrder.Label(),
		t.Accent.Render("Total"), st.Result.Count,
	)
	if q.Query != "" {
		header += fmt.Sprintf("  %s %q", t.Accent.Render("Search"), q.Query)
	}

	lines := []string{header, ""}
	items := st.Items()
	if len(items) == 0 {
		lines = append(lines, t.Muted.Render("No to-dos found."))
	}
	offset := (q.Page - 1) * st.Result.Limit
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", offset+i+1)
		due := model.FormatDueDate(it.DueDate)
		if due == "" {
			due = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s  %s  %s",
			t.Muted.Render(idx), t.Bullet, ui.Truncate(it.Title, 60),
			t.Due.Render(due), t.Muted.Render(it.ID)))
		if it.Description != "" {
			lines = append(lines, "     "+t.Muted.Render(ui.Truncate(it.Description, 72)))
		}
	}

	lines = append(lines, "", pagerLine(st))
	if st.CanNext() {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("Next: todo ls --page %d", q.Page+1)))
	}
	ui.Panel(w, lines)
}

func pagerLine(st listsync.State) string {
	t := ui.Current()
	prev, next := t.Prev+" prev", "next "+t.Next
	if st.CanPrev() {
		prev = t.Accent.Render(prev)
	} else {
		prev = t.Muted.Render(prev)
	}
	if st.CanNext() {
		next = t.Accent.Render(next)
	} else {
		next = t.Muted.Render(next)
	}
	return fmt.Sprintf("%s   Page %d / %d   %s", prev, st.Query.Page, st.TotalPages(), next)
}

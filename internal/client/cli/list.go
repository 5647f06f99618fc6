package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/salafuz/admin-panel/internal/client/storage"
	"github.com/salafuz/admin-panel/internal/client/store"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

func runList[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	fs := flag.NewFlagSet(s.Name()+" list", flag.ContinueOnError)
	fs.SetOutput(c.io)

	var q pkgapi.ListQuery
	fs.IntVar(&q.Page, "page", 0, "page number (default: last used, else 1)")
	fs.IntVar(&q.PerPage, "per-page", 0, "page size (default: last used, else 10)")
	fs.StringVar(&q.Search, "search", "", "search text")
	fs.StringVar(&q.Sort, "sort", "", "sort field")
	fs.StringVar(&q.Direction, "direction", "", "sort direction: asc or desc")
	fs.StringVar(&q.Status, "status", "", "status filter (posts)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	// Страница и размер по умолчанию берутся из прошлого запуска
	if q.Page == 0 || q.PerPage == 0 {
		saved, err := c.prefs.GetPagination(ctx, s.Name())
		if err != nil {
			return fmt.Errorf("failed to load saved pagination: %w", err)
		}
		if q.Page == 0 {
			q.Page = saved.Page
		}
		if q.PerPage == 0 {
			q.PerPage = saved.PerPage
		}
	}

	if err := s.FetchAll(ctx, &q); err != nil {
		return err
	}

	st := s.State()
	if err := c.prefs.SavePagination(ctx, s.Name(), storage.Pagination{Page: st.Page, PerPage: st.PerPage}); err != nil {
		return fmt.Errorf("failed to save pagination: %w", err)
	}

	c.io.Printf("=== %s ===\n\n", capitalize(s.Name()))
	if len(st.Items) == 0 {
		c.io.Println("No " + s.Name() + " found.")
	} else {
		printTable(c, v, st.Items)
	}

	c.io.Printf("\nPage %d of %d (%d total, %d per page)\n", st.Page, pageCount(st.Total, st.PerPage), st.Total, st.PerPage)
	return nil
}

func runDeleted[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T]) error {
	if err := s.FetchDeleted(ctx); err != nil {
		return err
	}

	deleted := s.State().Deleted
	c.io.Printf("=== Deleted %s ===\n\n", s.Name())
	if len(deleted) == 0 {
		c.io.Println("Nothing in the deleted set.")
		return nil
	}
	printTable(c, v, deleted)
	return nil
}

func printTable[T store.Entity](c *Cli, v view[T], items []T) {
	tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(v.columns, "\t"))
	for _, item := range items {
		_, _ = fmt.Fprintln(tw, strings.Join(v.row(item), "\t"))
	}
	_ = tw.Flush()
}

func pageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

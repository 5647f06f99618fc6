package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/salafuz/admin-panel/internal/client/store"
)

func runGet[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	if len(args) != 1 {
		return c.usageErr("%s get <id>", s.Name())
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := s.FetchOne(ctx, id)
	if err != nil {
		return err
	}

	return render(c, v, *item)
}

func render[T store.Entity](c *Cli, v view[T], item T) error {
	if err := v.detail.Execute(c.io, item); err != nil {
		return fmt.Errorf("failed to render %s: %w", v.singular, err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

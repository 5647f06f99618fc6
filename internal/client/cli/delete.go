package cli

import (
	"context"

	"github.com/salafuz/admin-panel/internal/client/store"
)

func runSoftDelete[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	id, err := singleID(c, s.Name()+" delete <id>", args)
	if err != nil {
		return err
	}
	if err := s.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ %s %s moved to the deleted set\n", capitalize(v.singular), fmtID(id))
	return nil
}

func runRestore[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	id, err := singleID(c, s.Name()+" restore <id>", args)
	if err != nil {
		return err
	}
	if err := s.Restore(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ %s %s restored\n", capitalize(v.singular), fmtID(id))
	return nil
}

func runPurge[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	id, err := singleID(c, s.Name()+" purge <id>", args)
	if err != nil {
		return err
	}
	if err := s.ForceDelete(ctx, id); err != nil {
		return err
	}
	c.io.Printf("✓ %s %s deleted permanently\n", capitalize(v.singular), fmtID(id))
	return nil
}

func singleID(c *Cli, usage string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, c.usageErr("%s", usage)
	}
	return parseID(args[0])
}

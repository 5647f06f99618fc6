package cli

import (
	"context"
	"fmt"
	"text/template"

	"github.com/salafuz/admin-panel/internal/client/store"
)

// view describes how one resource is printed
type view[T store.Entity] struct {
	detail   *template.Template
	row      func(T) []string
	singular string
	columns  []string
}

func runResource[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	if len(args) == 0 {
		c.io.Printf("Missing action. Usage: %s %s <list|get|create|update|delete|restore|purge|deleted>\n", AppName, s.Name())
		return ErrUsage
	}

	action, rest := args[0], args[1:]
	switch action {
	case "list":
		return runList(ctx, c, s, v, rest)
	case "get":
		return runGet(ctx, c, s, v, rest)
	case "create":
		return runCreate(ctx, c, s, v, rest)
	case "update":
		return runUpdate(ctx, c, s, v, rest)
	case "delete":
		return runSoftDelete(ctx, c, s, v, rest)
	case "restore":
		return runRestore(ctx, c, s, v, rest)
	case "purge":
		return runPurge(ctx, c, s, v, rest)
	case "deleted":
		return runDeleted(ctx, c, s, v)
	default:
		c.io.Printf("Unknown action: %s %s\n", s.Name(), action)
		return ErrUsage
	}
}

func (c *Cli) usageErr(format string, a ...any) error {
	c.io.Printf("Usage: "+AppName+" "+format+"\n", a...)
	return ErrUsage
}

func fmtID(id int64) string {
	return fmt.Sprintf("#%d", id)
}

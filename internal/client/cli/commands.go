package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/client/guard"
	"github.com/salafuz/admin-panel/internal/client/store"
	"github.com/salafuz/admin-panel/internal/validation"
	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

// Run выполняет команду. Каждая команда, кроме help, проходит через guard.Check.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		PrintUsage(c.io)
		return ErrUsage
	}

	command := args[0]
	if command == "help" {
		PrintUsage(c.io)
		return nil
	}

	if d := guard.Check(command, c.session); !d.Allow {
		return fmt.Errorf("%w: run '%s %s' first", ErrNotAuthenticated, AppName, d.Redirect)
	}

	err := c.dispatch(ctx, command, args[1:])
	c.printFieldErrors(err)
	return err
}

func (c *Cli) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case guard.LoginRoute:
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case pkgapi.ResourcePosts:
		if handled, err := c.runPostsExtra(ctx, args); handled {
			return err
		}
		return runResource(ctx, c, c.stores.Posts.Store, postView, args)
	case pkgapi.ResourceCategories:
		if handled, err := c.runCategoriesExtra(ctx, args); handled {
			return err
		}
		return runResource(ctx, c, c.stores.Categories.Store, categoryView, args)
	case pkgapi.ResourceTags:
		return runResource(ctx, c, c.stores.Tags, tagView, args)
	case pkgapi.ResourceScholars:
		return runResource(ctx, c, c.stores.Scholars, scholarView, args)
	case pkgapi.ResourceImages:
		if handled, err := c.runImagesExtra(ctx, args); handled {
			return err
		}
		return runResource(ctx, c, c.stores.Images.Store, imageView, args)
	default:
		c.io.Printf("Unknown command: %s\n\n", command)
		PrintUsage(c.io)
		return ErrUsage
	}
}

// printFieldErrors выводит ошибки валидации по полям, если они есть
func (c *Cli) printFieldErrors(err error) {
	errs := fieldErrors(err)
	if len(errs) == 0 {
		return
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		c.io.Printf("  %s: %s\n", f, errs[f])
	}
}

func fieldErrors(err error) map[string]string {
	var serr *store.Error
	if errors.As(err, &serr) {
		return serr.Fields
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return api.FieldErrors(err)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/salafuz/admin-panel/internal/client/store"
)

func runCreate[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	in, err := readPayload[In](c, s.Name()+" create", args)
	if err != nil {
		return err
	}

	created, err := s.Create(ctx, in)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Created %s %s\n", v.singular, fmtID((*created).GetID()))
	return render(c, v, *created)
}

func runUpdate[T store.Entity, In any](ctx context.Context, c *Cli, s *store.Store[T, In], v view[T], args []string) error {
	if len(args) == 0 {
		return c.usageErr("%s update <id> --data JSON | --file PATH", s.Name())
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	in, err := readPayload[In](c, s.Name()+" update", args[1:])
	if err != nil {
		return err
	}

	updated, err := s.Update(ctx, id, in)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Updated %s %s\n", v.singular, fmtID(id))
	return render(c, v, *updated)
}

// readPayload разбирает --data или --file в In. Неизвестные поля считаются ошибкой.
func readPayload[In any](c *Cli, name string, args []string) (In, error) {
	var in In

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	data := fs.String("data", "", "JSON payload")
	file := fs.String("file", "", "path to a JSON payload file")
	if err := fs.Parse(args); err != nil {
		return in, ErrUsage
	}

	var raw []byte
	switch {
	case *data != "" && *file != "":
		return in, fmt.Errorf("use either --data or --file, not both")
	case *data != "":
		raw = []byte(*data)
	case *file != "":
		content, err := os.ReadFile(*file)
		if err != nil {
			return in, fmt.Errorf("failed to read payload file: %w", err)
		}
		raw = content
	default:
		return in, c.usageErr("%s --data JSON | --file PATH", name)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("invalid JSON payload: %w", err)
	}

	return in, nil
}

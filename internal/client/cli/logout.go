package cli

import "context"

func (c *Cli) runLogout(ctx context.Context) error {
	c.session.SignOut(ctx)
	c.io.Println("✓ Logged out. Local session removed.")
	return nil
}

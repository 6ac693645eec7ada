package cli

import (
	"context"
	"flag"
	"fmt"
)

type totalsCommand struct {
	env *Env
	fs  *flag.FlagSet
}

func TotalsCommand(env *Env) Command {
	return &totalsCommand{
		env: env,
		fs:  newFlagSet(env, "totals"),
	}
}

func (c *totalsCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *totalsCommand) Run(ctx context.Context) error {
	client, err := c.env.authed()
	if err != nil {
		return err
	}

	totals, err := client.Totals(ctx)
	if err != nil {
		return fmt.Errorf("fetching totals failed: %w", err)
	}

	c.env.printf("Total paid:     %.2f\nTotal received: %.2f\n", totals.Paid, totals.Received)
	return nil
}

func (c *totalsCommand) Name() string {
	return c.fs.Name()
}

func (c *totalsCommand) Description() string {
	return "Show the total moi paid and received"
}

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

type exportCommand struct {
	env     *Env
	fs      *flag.FlagSet
	paid    bool
	eventId string
	output  string
}

func ExportCommand(env *Env) Command {
	cmd := &exportCommand{
		env: env,
		fs:  newFlagSet(env, "export"),
	}

	cmd.fs.BoolVar(&cmd.paid, "paid", false, "Download the paid moi report")
	cmd.fs.StringVar(&cmd.eventId, "event", "", "Download the received moi report of this event")
	cmd.fs.StringVar(&cmd.output, "o", "", "Output file. Defaults to the report's own name")

	return cmd
}

func (c *exportCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *exportCommand) Run(ctx context.Context) error {
	if c.paid == (c.eventId != "") {
		c.fs.Usage()
		return errors.New("exactly one of -paid or -event is required")
	}

	client, err := c.env.authed()
	if err != nil {
		return err
	}

	var report model.Report
	if c.paid {
		report, err = client.PaidReport(ctx)
	} else {
		report, err = client.ReceivedReport(ctx, c.eventId)
	}
	if err != nil {
		return fmt.Errorf("downloading report failed: %w", err)
	}

	path := c.output
	if path == "" {
		path = report.Filename
	}
	if err := os.WriteFile(path, report.Data, 0o644); err != nil {
		return err
	}

	c.env.printf("Report saved to %s (%d bytes)\n", path, len(report.Data))
	return nil
}

func (c *exportCommand) Name() string {
	return c.fs.Name()
}

func (c *exportCommand) Description() string {
	return "Download paid or received moi reports"
}

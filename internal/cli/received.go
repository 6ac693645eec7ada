package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

type receivedCommand struct {
	env     *Env
	fs      *flag.FlagSet
	eventId string
	create  bool
	list    bool
	query   string
	values  keyValues
}

func ReceivedCommand(env *Env) Command {
	cmd := &receivedCommand{
		env:    env,
		fs:     newFlagSet(env, "received"),
		values: keyValues{},
	}

	cmd.fs.StringVar(&cmd.eventId, "event", "", "Id of the event")
	cmd.fs.BoolVar(&cmd.create, "create", false, "Record moi received at the event")
	cmd.fs.BoolVar(&cmd.list, "list", false, "List the moi received at the event")
	cmd.fs.StringVar(&cmd.query, "q", "", "Only list entries matching this name, area or amount")
	cmd.fs.Var(cmd.values, "set", "Field value as key=value, repeatable. See 'event -show' for the fields")

	return cmd
}

func (c *receivedCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *receivedCommand) Run(ctx context.Context) error {
	if c.eventId == "" || c.create == c.list {
		c.fs.Usage()
		return errors.New("-event and exactly one of -create or -list are required")
	}

	client, err := c.env.authed()
	if err != nil {
		return err
	}

	if c.create {
		event, err := client.Event(ctx, c.eventId)
		if err != nil {
			return fmt.Errorf("fetching event failed: %w", err)
		}

		f := form.NewEntryForm(event.Id, form.EnabledFieldsFrom(event.FormFields))
		values := f.Defaults(c.env.Now())
		for k, v := range c.values {
			id := form.FieldId(k)
			if !f.Has(id) {
				return fmt.Errorf("field %q is not on the entry form of %s", k, event.EventName)
			}
			values[id] = v
		}

		submission, err := f.Submit(values)
		if err != nil {
			if printValidation(c.env, err) {
				return errors.New("received moi not recorded")
			}
			return err
		}
		if err := client.CreateReceived(ctx, submission); err != nil {
			return fmt.Errorf("recording received moi failed: %w", err)
		}
		c.env.printf("Received moi from %s recorded!\n", submission.FormFields.Value(string(form.FullName)))
		return nil
	}

	entries, err := client.ReceivedEntries(ctx, c.eventId)
	if err != nil {
		return fmt.Errorf("listing received moi failed: %w", err)
	}
	entries = model.FilterReceived(entries, c.query)

	w := tabwriter.NewWriter(c.env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FULL NAME\tAREA\tAMOUNT\tDATE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.FormFields.Value(string(form.FullName)),
			e.FormFields.Address.Area,
			e.FormFields.Value(string(form.PaymentAmount)),
			e.FormFields.Value(string(form.Date)),
		)
	}
	return w.Flush()
}

func (c *receivedCommand) Name() string {
	return c.fs.Name()
}

func (c *receivedCommand) Description() string {
	return "Record or list moi received at an event"
}

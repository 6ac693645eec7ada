package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/tomuthu-engineer/moibook/internal/form"
)

type eventCommand struct {
	env    *Env
	fs     *flag.FlagSet
	create bool
	list   bool
	show   string
	input  form.EventInput
	fields string
}

func EventCommand(env *Env) Command {
	cmd := &eventCommand{
		env: env,
		fs:  newFlagSet(env, "event"),
	}

	cmd.fs.BoolVar(&cmd.create, "create", false, "Create a new event")
	cmd.fs.BoolVar(&cmd.list, "list", false, "List all events")
	cmd.fs.StringVar(&cmd.show, "show", "", "Show the event with this id and its entry form fields")
	cmd.fs.StringVar(&cmd.input.EventName, "name", "", "Name of the event")
	cmd.fs.StringVar(&cmd.input.EventDate, "date", "", "Date of the event, YYYY-MM-DD. Defaults to today")
	cmd.fs.StringVar(&cmd.input.EventType, "type", "", "Type of the event, e.g. Wedding")
	cmd.fs.StringVar(&cmd.input.Area, "area", "", "Area of the event")
	cmd.fs.StringVar(&cmd.input.District, "district", "", "District of the event")
	cmd.fs.StringVar(&cmd.input.State, "state", "", "State of the event")
	cmd.fs.StringVar(&cmd.fields, "fields", "", "Comma separated optional fields for the entry form. Defaults to the required ones")

	return cmd
}

func (c *eventCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *eventCommand) Run(ctx context.Context) error {
	modes := 0
	for _, on := range []bool{c.create, c.list, c.show != ""} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		c.fs.Usage()
		return errors.New("exactly one of -create, -list or -show is required")
	}

	client, err := c.env.authed()
	if err != nil {
		return err
	}

	switch {
	case c.create:
		in := c.input
		if in.EventDate == "" {
			in.EventDate = c.env.Now().Format(form.DateLayout)
		}
		in.FormFields = form.DefaultSelection()
		for _, f := range strings.Split(c.fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				in.FormFields = append(in.FormFields, f)
			}
		}

		event, err := form.NewEvent(in)
		if err != nil {
			if printValidation(c.env, err) {
				return errors.New("event not created")
			}
			return err
		}
		if err := client.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("creating event failed: %w", err)
		}
		c.env.printf("Event %q created!\n", event.EventName)

	case c.list:
		events, err := client.Events(ctx)
		if err != nil {
			return fmt.Errorf("listing events failed: %w", err)
		}
		w := tabwriter.NewWriter(c.env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tDATE\tADDRESS")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Id, e.EventName, e.EventType, e.EventDate, e.EventAddress)
		}
		return w.Flush()

	default:
		event, err := client.Event(ctx, c.show)
		if err != nil {
			return fmt.Errorf("fetching event failed: %w", err)
		}
		entry := form.NewEntryForm(event.Id, form.EnabledFieldsFrom(event.FormFields))
		c.env.printf("%s (%s, %s)\n%s\nEntry form fields:\n", event.EventName, event.EventType, event.EventDate, event.EventAddress)
		for _, f := range entry.Fields {
			required := ""
			if f.Required {
				required = " (required)"
			}
			c.env.printf("\t%s\t%s%s\n", f.Id, f.Label(), required)
		}
	}

	return nil
}

func (c *eventCommand) Name() string {
	return c.fs.Name()
}

func (c *eventCommand) Description() string {
	return "Create, list or show events"
}

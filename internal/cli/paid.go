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

type paidCommand struct {
	env    *Env
	fs     *flag.FlagSet
	create bool
	list   bool
	query  string
	input  form.PaidInput
}

func PaidCommand(env *Env) Command {
	cmd := &paidCommand{
		env: env,
		fs:  newFlagSet(env, "paid"),
	}

	cmd.fs.BoolVar(&cmd.create, "create", false, "Record moi you paid")
	cmd.fs.BoolVar(&cmd.list, "list", false, "List the moi you paid")
	cmd.fs.StringVar(&cmd.query, "q", "", "Only list entries matching this name, event type or area")
	cmd.fs.StringVar(&cmd.input.BeneficiaryName, "name", "", "Name of the beneficiary")
	cmd.fs.StringVar(&cmd.input.Amount, "amount", "", "Amount paid")
	cmd.fs.StringVar(&cmd.input.Date, "date", "", "Date paid, YYYY-MM-DD. Defaults to today")
	cmd.fs.StringVar(&cmd.input.EventType, "type", "", "Type of the event")
	cmd.fs.StringVar(&cmd.input.Area, "area", "", "Area")
	cmd.fs.StringVar(&cmd.input.District, "district", "", "District")
	cmd.fs.StringVar(&cmd.input.State, "state", "", "State")
	cmd.fs.StringVar(&cmd.input.Remarks, "remarks", "", "Optional remarks")

	return cmd
}

func (c *paidCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *paidCommand) Run(ctx context.Context) error {
	if c.create == c.list {
		c.fs.Usage()
		return errors.New("exactly one of -create or -list is required")
	}

	if c.create {
		in := c.input
		if in.Date == "" {
			in.Date = c.env.Now().Format(form.DateLayout)
		}
		// validate before the session is even looked at
		entry, err := form.NewPaidEntry(in, c.env.Now())
		if err != nil {
			if printValidation(c.env, err) {
				return errors.New("paid moi not recorded")
			}
			return err
		}

		client, err := c.env.authed()
		if err != nil {
			return err
		}
		if err := client.CreatePaid(ctx, entry); err != nil {
			return fmt.Errorf("recording paid moi failed: %w", err)
		}
		c.env.printf("Paid moi of %.2f to %s recorded!\n", entry.Amount, entry.BeneficiaryName)
		return nil
	}

	client, err := c.env.authed()
	if err != nil {
		return err
	}
	entries, err := client.PaidEntries(ctx)
	if err != nil {
		return fmt.Errorf("listing paid moi failed: %w", err)
	}
	entries = model.FilterPaid(entries, c.query)

	var total float64
	w := tabwriter.NewWriter(c.env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BENEFICIARY\tAMOUNT\tDATE\tEVENT TYPE\tAREA")
	for _, e := range entries {
		total += e.Amount
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\n", e.BeneficiaryName, e.Amount, e.Date, e.EventType, e.Area)
	}
	fmt.Fprintf(w, "TOTAL\t%.2f\t\t\t\n", total)
	return w.Flush()
}

func (c *paidCommand) Name() string {
	return c.fs.Name()
}

func (c *paidCommand) Description() string {
	return "Record or list moi you paid"
}

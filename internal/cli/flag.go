package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/api"
	"github.com/tomuthu-engineer/moibook/internal/auth"
	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

var ErrNotSignedIn = errors.New("not signed in, run 'moibook login' and export MOIBOOK_CLI_TOKEN")

type Command interface {
	Init(args []string) error
	Run(ctx context.Context) error
	Name() string
	Description() string
}

// Env is what every command runs against.
type Env struct {
	Client *api.Client
	Token  string
	In     io.Reader
	Out    io.Writer
	Now    func() time.Time
}

// authed returns the backend client for the session held in MOIBOOK_CLI_TOKEN.
func (e *Env) authed() (*api.Client, error) {
	session := &model.AuthSession{AccessToken: e.Token}
	if exp, ok := auth.TokenExpiry(e.Token); ok {
		session.Expiry = exp
	}
	if !session.Valid(e.Now()) {
		return nil, ErrNotSignedIn
	}
	return e.Client.WithSession(session), nil
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

type Commands []Command

func NewCommands(env *Env) Commands {
	return Commands{
		LoginCommand(env),
		EventCommand(env),
		PaidCommand(env),
		ReceivedCommand(env),
		TotalsCommand(env),
		ExportCommand(env),
	}
}

func (c Commands) Usage(w io.Writer) {
	fmt.Fprintln(w, "Available subcommands:")
	for _, cmd := range c {
		fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.Description())
	}
}

func ParseFlags(env *Env, args []string) (bool, Command) {
	cmds := NewCommands(env)

	if len(args) < 1 {
		fmt.Fprintln(env.Out, "You must pass a subcommand")
		cmds.Usage(env.Out)
		return false, nil
	}

	subCmd := args[0]

	if subCmd == "help" {
		cmds.Usage(env.Out)
		return false, nil
	}

	for _, cmd := range cmds {
		if cmd.Name() == subCmd {
			err := cmd.Init(args[1:])
			if err != nil {
				if !errors.Is(err, flag.ErrHelp) {
					fmt.Fprintln(env.Out, err.Error())
				}
				return false, nil
			}

			return true, cmd
		}
	}

	fmt.Fprintf(env.Out, "Invalid subcommand %s\n", subCmd)
	cmds.Usage(env.Out)
	return false, nil
}

func newFlagSet(env *Env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Out)
	return fs
}

// keyValues collects repeated -set key=value flags.
type keyValues map[string]string

func (kv keyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

func (kv keyValues) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	kv[strings.TrimSpace(k)] = v
	return nil
}

// printValidation lists field errors one per line.
func printValidation(env *Env, err error) bool {
	ve, ok := form.AsValidationError(err)
	if !ok {
		return false
	}
	env.printf("Invalid input:\n")
	for _, fe := range ve.Errors {
		env.printf("\t-%s: %s\n", fe.Field, fe.Message)
	}
	return true
}

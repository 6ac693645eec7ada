package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

type loginCommand struct {
	env    *Env
	fs     *flag.FlagSet
	mobile string
}

func LoginCommand(env *Env) Command {
	cmd := &loginCommand{
		env: env,
		fs:  newFlagSet(env, "login"),
	}

	cmd.fs.StringVar(&cmd.mobile, "mobile", "", "Your mobile number. Prompted for when empty")

	return cmd
}

func (c *loginCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *loginCommand) Run(ctx context.Context) error {
	reader := bufio.NewReader(c.env.In)
	if c.mobile == "" {
		c.env.printf("Enter mobile number: ")
		text, _ := reader.ReadString('\n')
		c.mobile = strings.TrimSpace(text)
	}

	if err := form.ValidateStruct(model.RequestOTPDTO{Mobile: c.mobile}); err != nil {
		printValidation(c.env, err)
		return errors.New("login aborted")
	}

	if err := c.env.Client.RequestOTP(ctx, c.mobile); err != nil {
		return fmt.Errorf("requesting OTP failed: %w", err)
	}

	c.env.printf("Enter the OTP sent to %s: ", c.mobile)
	otp, _ := reader.ReadString('\n')
	otp = strings.TrimSpace(otp)

	if err := form.ValidateStruct(model.VerifyOTPDTO{Mobile: c.mobile, Otp: otp}); err != nil {
		printValidation(c.env, err)
		return errors.New("login aborted")
	}

	tokens, err := c.env.Client.VerifyOTP(ctx, c.mobile, otp)
	if err != nil {
		return fmt.Errorf("verifying OTP failed: %w", err)
	}

	c.env.printf("Signed in!\nTo use the cli run the following command:\n$ export MOIBOOK_CLI_TOKEN=%s\n", tokens.AccessToken)
	return nil
}

func (c *loginCommand) Name() string {
	return c.fs.Name()
}

func (c *loginCommand) Description() string {
	return "Sign in with your mobile number and an OTP"
}

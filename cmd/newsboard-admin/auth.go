package main

import (
	"errors"
	"flag"
	"fmt"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/service"
)

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	if err := parseFlags(fs, ctx.Out, args); err != nil {
		return err
	}
	return authenticate(ctx, domainauth.ModeLogin, domainauth.Credentials{Email: *email, Password: *password})
}

func runSignup(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	name := fs.String("name", "", "display name")
	if err := parseFlags(fs, ctx.Out, args); err != nil {
		return err
	}
	return authenticate(ctx, domainauth.ModeSignup, domainauth.Credentials{Email: *email, Password: *password, Name: *name})
}

func authenticate(ctx *commandContext, mode domainauth.Mode, creds domainauth.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return fmt.Errorf("%w: --email and --password are required", errUsage)
	}

	auth, _, err := ctx.services()
	if err != nil {
		return err
	}
	result, msg, err := auth.Authenticate(ctx.Ctx, mode, creds)
	if err != nil {
		return errors.New(service.AuthFailureMessage(err))
	}

	if result != nil {
		return writef(ctx.Out, "%s (signed in as %s)\n", msg, result.Session.Email)
	}
	return writeln(ctx.Out, msg)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/newsboard/newsboard/config"
	"github.com/newsboard/newsboard/internal/adapters/gateway"
	"github.com/newsboard/newsboard/internal/adapters/memory"
	"github.com/newsboard/newsboard/internal/bootstrap"
	"github.com/newsboard/newsboard/internal/service"
)

// errUsage marks bad invocations; they exit with status 2.
var errUsage = errors.New("usage error")

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer

	auth *service.AuthService
	news *service.NewsService
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, Config: cfg, Out: os.Stdout}
	code := exitCode(runCommand(cmdCtx, os.Args[1], os.Args[2:]))
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate command execution failure to callers
}

// runCommand dispatches name with its flags.
func runCommand(cmdCtx *commandContext, name string, args []string) error {
	cmd, ok := commands()[name]
	if !ok {
		if err := writef(cmdCtx.Out, "unknown command %q\n\n", name); err != nil {
			return err
		}
		if err := printUsage(cmdCtx.Out); err != nil {
			return err
		}
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}

	if err := cmd.run(cmdCtx, args); err != nil {
		if !errors.Is(err, errUsage) {
			cmdCtx.logger().ErrorContext(cmdCtx.Ctx, "command failed", "command", name, "error", err)
		}
		return err
	}
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

func commands() map[string]command {
	return map[string]command{
		"list": {
			name:        "list",
			description: "List news items from the news endpoint",
			run:         runList,
		},
		"upload": {
			name:        "upload",
			description: "Upload a news item with an image file",
			run:         runUpload,
		},
		"login": {
			name:        "login",
			description: "Check credentials against the auth endpoint",
			run:         runLogin,
		},
		"signup": {
			name:        "signup",
			description: "Create an account at the auth endpoint",
			run:         runSignup,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: newsboard-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

// parseFlags parses a command's flags; any failure is a usage error.
func parseFlags(fs *flag.FlagSet, out io.Writer, args []string) error {
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func (c *commandContext) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// services builds the gateway-backed services on first use. The HTTP client
// keeps cookies the gateway sets across calls within one command.
func (c *commandContext) services() (*service.AuthService, *service.NewsService, error) {
	if c.auth != nil && c.news != nil {
		return c.auth, c.news, nil
	}

	client, err := gateway.NewCookieJarClient(c.Config.API.Timeout)
	if err != nil {
		return nil, nil, err
	}
	gateways, err := bootstrap.BuildGateways(bootstrap.GatewayConfig{
		API:    c.Config.API,
		Client: client,
		Logger: c.logger(),
	})
	if err != nil {
		return nil, nil, err
	}

	c.auth = service.NewAuthService(service.AuthServiceOptions{
		Gateway:  gateways.Auth,
		Sessions: memory.NewSessionStore(),
		TTL:      c.Config.Session.TTL,
		Logger:   c.logger(),
	})
	c.news = service.NewNewsService(service.NewsServiceOptions{Gateway: gateways.News, Logger: c.logger()})
	return c.auth, c.news, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jobdesk/jobdesk-go/internal/authz"
	"github.com/jobdesk/jobdesk-go/internal/bootstrap"
	domainauth "github.com/jobdesk/jobdesk-go/internal/domain/auth"
	apperr "github.com/jobdesk/jobdesk-go/internal/errors"
	"github.com/jobdesk/jobdesk-go/internal/session"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger, os.Args[1:]); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	controller := bootstrap.BuildSession(bootstrap.SessionConfig{
		Config: cfg,
		Logger: logger,
	})
	if controller == nil {
		return errors.New("session subsystem could not be configured")
	}

	// Silent session restore before any command runs; the authorization gate
	// is not trusted until this resolves.
	if err = controller.Boot(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return usage()
	}

	switch args[0] {
	case "login":
		return cmdLogin(ctx, controller, args[1:])
	case "register":
		return cmdRegister(ctx, controller, args[1:])
	case "logout":
		controller.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return cmdWhoami(controller)
	case "refresh":
		return cmdRefresh(ctx, controller)
	case "routes":
		return cmdRoutes(controller)
	case "forgot-password":
		return cmdForgotPassword(ctx, controller, args[1:])
	case "reset-password":
		return cmdResetPassword(ctx, controller, args[1:])
	default:
		return usage()
	}
}

func usage() error {
	fmt.Fprintln(os.Stderr, `usage: jobdesk <command> [args]

commands:
  login <email> <password>
  register <name> <email> <password> <jobseeker|employer>
  logout
  whoami
  refresh
  routes
  forgot-password <email>
  reset-password <token> <new-password>`)
	return errors.New("unknown or missing command")
}

func cmdLogin(ctx context.Context, c *session.Controller, args []string) error {
	if len(args) != 2 {
		return errors.New("login requires <email> <password>")
	}
	creds := domainauth.Credentials{Email: args[0], Password: args[1]}
	if err := c.Login(ctx, creds); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	snap := c.Store().Snapshot()
	fmt.Printf("Logged in as %s (%s). Landing page: %s\n",
		snap.Identity.Name, snap.Identity.Role, authz.DefaultPath(snap.Role()))
	return nil
}

func cmdRegister(ctx context.Context, c *session.Controller, args []string) error {
	if len(args) != 4 {
		return errors.New("register requires <name> <email> <password> <jobseeker|employer>")
	}
	reg := domainauth.Registration{
		Name:     args[0],
		Email:    args[1],
		Password: args[2],
		Role:     domainauth.Role(args[3]),
	}
	if err := c.Register(ctx, reg); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	snap := c.Store().Snapshot()
	fmt.Printf("Welcome, %s. Landing page: %s\n", snap.Identity.Name, authz.DefaultPath(snap.Role()))
	return nil
}

func cmdWhoami(c *session.Controller) error {
	snap := c.Store().Snapshot()
	if !snap.Authenticated {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> role=%s verified=%t\n",
		snap.Identity.Name, snap.Identity.Email, snap.Identity.Role, snap.Identity.EmailVerified)
	return nil
}

func cmdRefresh(ctx context.Context, c *session.Controller) error {
	if err := c.RefreshIdentity(ctx); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	return cmdWhoami(c)
}

func cmdRoutes(c *session.Controller) error {
	snap := c.Store().Snapshot()
	for _, r := range authz.NavigableRoutes(snap.Role()) {
		decision := authz.Decide(snap, r.Roles, r.Path)
		fmt.Printf("%-32s %-20s %s\n", r.Path, r.Title, decision.Kind)
	}
	return nil
}

func cmdForgotPassword(ctx context.Context, c *session.Controller, args []string) error {
	if len(args) != 1 {
		return errors.New("forgot-password requires <email>")
	}
	if err := c.RequestPasswordReset(ctx, args[0]); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	fmt.Println(c.Store().Snapshot().SuccessMessage)
	return nil
}

func cmdResetPassword(ctx context.Context, c *session.Controller, args []string) error {
	if len(args) != 2 {
		return errors.New("reset-password requires <token> <new-password>")
	}
	if err := c.ConfirmPasswordReset(ctx, args[0], args[1]); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	fmt.Println(c.Store().Snapshot().SuccessMessage)
	return nil
}

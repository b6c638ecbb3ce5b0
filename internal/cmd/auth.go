package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"chatterly/internal/api"
	"chatterly/internal/cmd/flags"
	"chatterly/internal/core"
	"chatterly/internal/forms"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var signupCmd = &cli.Command{
	Name:  "signup",
	Usage: "Create an account",
	Flags: []cli.Flag{
		flags.Username,
		flags.Email,
		flags.Password,
		flags.Bio,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&signup{
			draft: forms.SignupDraft{
				Username: c.String("username"),
				Email:    c.String("email"),
				Password: c.String("password"),
				Bio:      c.String("bio"),
			},
		}))
	},
}

var loginCmd = &cli.Command{
	Name:  "login",
	Usage: "Log in and keep the session for the next commands",
	Flags: []cli.Flag{
		flags.Email,
		flags.Password,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&login{
			draft: forms.LoginDraft{
				Email:    c.String("email"),
				Password: c.String("password"),
			},
		}))
	},
}

var logoutCmd = &cli.Command{
	Name:  "logout",
	Usage: "Forget the session",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&logout{}))
	},
}

type signup struct {
	Logger   *slog.Logger
	API      *api.Client
	Sessions core.SessionStore

	draft forms.SignupDraft
}

func (s *signup) Run(ctx context.Context) error {
	form := forms.NewSignupForm(s.API, s.Sessions)
	form.Draft = s.draft

	return report(newPrinter(os.Stdout, false), form.Submit(ctx))
}

type login struct {
	Logger   *slog.Logger
	API      *api.Client
	Sessions core.SessionStore

	draft forms.LoginDraft
}

func (l *login) Run(ctx context.Context) error {
	form := forms.NewLoginForm(l.API, l.Sessions)
	form.Draft = l.draft

	return report(newPrinter(os.Stdout, false), form.Submit(ctx))
}

type logout struct {
	Sessions core.SessionStore
}

func (l *logout) Run(ctx context.Context) error {
	return report(newPrinter(os.Stdout, false), forms.Logout(ctx, l.Sessions))
}

// report prints the outcome and where to go next. A failed outcome becomes
// the command error.
func report(p *printer, out forms.Outcome) error {
	if out.Message.Failed() {
		return errors.New(out.Message.Text)
	}

	p.message(out.Message)

	switch out.Next {
	case forms.RouteFeed:
		p.message(forms.Info("Run `chatterly feed` to see what is going on nearby."))
	case forms.RouteLogin:
		p.message(forms.Info("Run `chatterly login` to continue."))
	}
	return nil
}

// authError points the user to login when the session is missing.
func authError(err error) error {
	if errors.Is(err, core.ErrNotAuthenticated) {
		return errors.New("not logged in, run `chatterly login` first")
	}
	return err
}

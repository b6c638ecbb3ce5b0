package cmd

import (
	"context"
	"errors"
	"os"

	"chatterly/internal/api"
	"chatterly/internal/cmd/flags"
	"chatterly/internal/forms"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var profileCmd = &cli.Command{
	Name:  "profile",
	Usage: "Show or update your profile",
	Commands: []*cli.Command{
		{
			Name:  "show",
			Usage: "Show your profile",
			Flags: []cli.Flag{flags.Raw},
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, pal.Provide(&profile{raw: c.Bool("raw")}))
			},
		},
		{
			Name:  "update",
			Usage: "Update your profile, omitted fields are kept",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Usage: "New username"},
				&cli.StringFlag{Name: "email", Usage: "New email"},
				flags.Bio,
			},
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, pal.Provide(&profile{
					update: func(draft *forms.ProfileDraft) {
						if c.IsSet("username") {
							draft.Username = c.String("username")
						}
						if c.IsSet("email") {
							draft.Email = c.String("email")
						}
						if c.IsSet("bio") {
							draft.Bio = c.String("bio")
						}
					},
				}))
			},
		},
	},
}

type profile struct {
	API *api.Client

	raw    bool
	update func(*forms.ProfileDraft)
}

// Run loads the profile and, when updating, sends back the whole edited draft.
func (p *profile) Run(ctx context.Context) error {
	out := newPrinter(os.Stdout, p.raw)
	form := forms.NewProfileForm(p.API)

	if msg := form.Load(ctx); msg.Failed() {
		return errors.New(msg.Text)
	}

	if p.update != nil {
		p.update(&form.Draft)
		if err := report(out, form.Save(ctx)); err != nil {
			return err
		}
	}

	out.user(form.User())
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"chatterly/internal/api"
	"chatterly/internal/cmd/flags"
	"chatterly/internal/core"
	"chatterly/internal/forms"
	"chatterly/internal/geocode"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var postCmd = &cli.Command{
	Name:  "post",
	Usage: "Create a post at a place",
	Flags: []cli.Flag{
		flags.Text,
		flags.PostType,
		&cli.StringFlag{
			Name:     flags.Location.Name,
			Usage:    flags.Location.Usage,
			Required: true,
		},
		flags.Image,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&post{
			text:      c.String("text"),
			postType:  core.PostType(c.String("type")),
			location:  c.String("location"),
			imagePath: c.String("image"),
		}))
	},
}

type post struct {
	Logger   *slog.Logger
	API      *api.Client
	Geocoder *geocode.Geocoder

	text      string
	postType  core.PostType
	location  string
	imagePath string
}

func (p *post) Run(ctx context.Context) error {
	out := newPrinter(os.Stdout, false)
	form := forms.NewCreatePostForm(p.API, p.Geocoder)

	form.Draft.Text = p.text
	form.Draft.PostType = lo.Ternary(p.postType != "", p.postType, form.Draft.PostType)
	form.Draft.LocationName = p.location

	if p.imagePath != "" {
		image, err := os.ReadFile(p.imagePath)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		form.Draft.Image = image
		form.Draft.ImageName = filepath.Base(p.imagePath)
	}

	msg := form.ResolveLocation(ctx)
	if msg.Failed() {
		return errors.New(msg.Text)
	}
	out.message(msg)

	p.Logger.Debug("submitting post", "type", form.Draft.PostType, "coordinates", form.Draft.Coordinates)

	return report(out, form.Submit(ctx))
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"chatterly/internal/api"
	"chatterly/internal/cmd/flags"
	"chatterly/internal/core"
	"chatterly/internal/feed"
	"chatterly/internal/forms"
	"chatterly/internal/geocode"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

var ErrUsage = errors.New("invalid usage")

var feedCmd = &cli.Command{
	Name:  "feed",
	Usage: "Show posts, optionally around a place",
	Flags: []cli.Flag{
		flags.Location,
		flags.PostType,
		flags.Radius,
		flags.Raw,
		&cli.DurationFlag{
			Name:  "watch",
			Usage: "Refresh the feed with this interval until interrupted",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		filter := core.NewFilter()
		filter.PostType = core.PostType(c.String("type"))
		filter.Radius = int(c.Int("radius"))

		return run(ctx, c, pal.Provide(&feedRunner{
			filter:   filter,
			location: c.String("location"),
			raw:      c.Bool("raw"),
			watch:    c.Duration("watch"),
		}))
	},
}

var reactCmd = &cli.Command{
	Name:      "react",
	Usage:     "Like or dislike a post",
	ArgsUsage: "<post-id> <like|dislike>",
	Action: func(ctx context.Context, c *cli.Command) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: expected %s", ErrUsage, c.ArgsUsage)
		}
		if err := flags.ValidateReaction(c.Args().Get(1)); err != nil {
			return err
		}

		return run(ctx, c, pal.Provide(&mutation{
			postID: c.Args().Get(0),
			apply: func(ctx context.Context, f *feed.Feed, postID string) error {
				return f.React(ctx, postID, core.Reaction(c.Args().Get(1)))
			},
		}))
	},
}

var replyCmd = &cli.Command{
	Name:      "reply",
	Usage:     "Reply to a post",
	ArgsUsage: "<post-id> <text>",
	Action: func(ctx context.Context, c *cli.Command) error {
		if c.NArg() < 2 {
			return fmt.Errorf("%w: expected %s", ErrUsage, c.ArgsUsage)
		}
		text := strings.Join(c.Args().Slice()[1:], " ")

		return run(ctx, c, pal.Provide(&mutation{
			postID: c.Args().Get(0),
			apply: func(ctx context.Context, f *feed.Feed, postID string) error {
				return f.Reply(ctx, postID, text)
			},
		}))
	},
}

var geocodeCmd = &cli.Command{
	Name:      "geocode",
	Usage:     "Resolve a place name into coordinates",
	ArgsUsage: "<query>",
	Flags:     []cli.Flag{flags.Raw},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&lookup{
			query: strings.Join(c.Args().Slice(), " "),
			raw:   c.Bool("raw"),
		}))
	},
}

type feedRunner struct {
	Logger   *slog.Logger
	API      *api.Client
	Geocoder *geocode.Geocoder
	Sessions core.SessionStore

	filter   core.Filter
	location string
	raw      bool
	watch    time.Duration
}

func (r *feedRunner) Run(ctx context.Context) error {
	out := newPrinter(os.Stdout, r.raw)

	f := feed.New(r.API, r.Geocoder, r.Sessions, r.Logger)
	defer f.Close()

	f.SetFilter(r.filter)

	var err error
	if r.location != "" {
		err = f.Locate(ctx, r.location)
	} else {
		err = f.Open(ctx)
	}
	if err != nil {
		return authError(err)
	}

	if err := f.Settle(ctx); err != nil {
		return ignoreCanceled(err)
	}
	r.render(f, out)

	if r.watch <= 0 {
		return nil
	}
	return watchFeed(ctx, f, r.watch, r.Logger, func() {
		out.header("")
		r.render(f, out)
	})
}

func (r *feedRunner) render(f *feed.Feed, out *printer) {
	if r.location != "" {
		out.header("Posts within %dm of %s", f.Filter().Radius, r.location)
	}
	out.entries(f.Entries())
}

// watchFeed refreshes f every interval and calls render once the replies of a
// refreshed list have settled. A failed refresh is logged and the next tick
// proceeds. It returns nil once ctx is done.
func watchFeed(ctx context.Context, f *feed.Feed, interval time.Duration, logger *slog.Logger, render func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := f.Refresh(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Warn("refresh failed, retrying on the next tick", "error", err)
			continue
		}

		if err := f.Settle(ctx); err != nil {
			return ignoreCanceled(err)
		}
		render()
	}
}

// mutation applies a reaction or reply and prints the refetched post.
type mutation struct {
	Logger   *slog.Logger
	API      *api.Client
	Sessions core.SessionStore

	postID string
	apply  func(ctx context.Context, f *feed.Feed, postID string) error
}

func (m *mutation) Run(ctx context.Context) error {
	f := feed.New(m.API, nil, m.Sessions, m.Logger)
	defer f.Close()

	if err := m.apply(ctx, f, m.postID); err != nil {
		return authError(err)
	}
	if err := f.Settle(ctx); err != nil {
		return ignoreCanceled(err)
	}

	out := newPrinter(os.Stdout, false)

	entry, ok := lo.Find(f.Entries(), func(entry feed.Entry) bool {
		return entry.Post.ID == m.postID
	})
	if !ok {
		out.message(forms.Info("Done, the post is no longer in your feed."))
		return nil
	}

	out.entries([]feed.Entry{entry})
	return nil
}

type lookup struct {
	Geocoder *geocode.Geocoder

	query string
	raw   bool
}

func (l *lookup) Run(ctx context.Context) error {
	coords, ok, err := l.Geocoder.Lookup(ctx, l.query)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", feed.ErrNoCoordinates, l.query)
	}

	newPrinter(os.Stdout, l.raw).coordinates(l.query, coords)
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

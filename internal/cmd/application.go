package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"chatterly/internal/api"
	"chatterly/internal/cmd/flags"
	"chatterly/internal/config"
	"chatterly/internal/core"
	"chatterly/internal/geocode"
	"chatterly/internal/metrics"
	"chatterly/internal/nats"
	"chatterly/internal/session"
	"chatterly/pkg/clicfg"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "chatterly",
	Usage:   "Chatterly is a command line client for the Chatterly neighbourhood feed",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
		flags.APIURL,
		flags.Timeout,
		flags.GeocodeURL,
		flags.GeocodeKey,
		flags.SessionBackend,
		flags.SessionFile,
		flags.NATSURL,
		flags.NATSBucket,
		flags.MetricsAddr,
	},
	Commands: []*cli.Command{
		signupCmd,
		loginCmd,
		logoutCmd,
		profileCmd,
		postCmd,
		feedCmd,
		reactCmd,
		replyCmd,
		geocodeCmd,
	},
}

func Run() {
	// Flag env sources are resolved while parsing, .env must be loaded first.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}
	services = append(services,
		pal.Provide(&cfg),
		pal.Provide(&api.Client{}),
		pal.Provide(&geocode.Geocoder{}),
		sessionStore(&cfg),
	)

	if cfg.MetricsAddr != "" {
		services = append(services, pal.Provide(&metrics.Server{}))
	}

	return pal.New(services...).
		InjectSlog().
		InitTimeout(5*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}

func sessionStore(cfg *config.Config) pal.ServiceDef {
	if cfg.SessionBackend == config.SessionBackendNATS {
		return nats.Provide()
	}
	return pal.Provide[core.SessionStore](&session.FileStore{})
}

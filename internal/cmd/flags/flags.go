package flags

import (
	"fmt"
	"slices"
	"time"

	"chatterly/internal/api"
	"chatterly/internal/config"
	"chatterly/internal/core"
	"chatterly/internal/geocode"

	libnats "github.com/nats-io/nats.go"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

var (
	validLogLevels       = []string{"debug", "info", "warn", "error"}
	validSessionBackends = []string{config.SessionBackendFile, config.SessionBackendNATS}
	validReactions       = []string{string(core.ReactionLike), string(core.ReactionDislike)}
)

func oneOf(name string, allowed []string) func(string) error {
	return func(value string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("invalid %s: %s, allowed values are: %s", name, value, allowed)
		}
		return nil
	}
}

// TODO: extract custom EnumFlag
var LogLevel = &cli.StringFlag{
	Name:      "log-level",
	Aliases:   []string{"l"},
	Usage:     "The level of the logs",
	Value:     "info",
	Validator: oneOf("log level", validLogLevels),
	Sources:   cli.EnvVars("LOG_LEVEL"),
}

var APIURL = &cli.StringFlag{
	Name:    "api-url",
	Usage:   "The base URL of the Chatterly backend",
	Value:   api.DefaultConfig.BaseURL,
	Sources: cli.EnvVars("CHATTERLY_API_URL"),
}

var Timeout = &cli.DurationFlag{
	Name:    "timeout",
	Usage:   "Per request timeout",
	Value:   10 * time.Second,
	Sources: cli.EnvVars("CHATTERLY_TIMEOUT"),
}

var GeocodeURL = &cli.StringFlag{
	Name:    "geocode-url",
	Usage:   "The OpenCage compatible geocoding endpoint",
	Value:   geocode.DefaultURL,
	Sources: cli.EnvVars("GEOCODE_URL"),
}

var GeocodeKey = &cli.StringFlag{
	Name:    "geocode-key",
	Usage:   "The geocoding API key",
	Sources: cli.EnvVars("OPENCAGE_API_KEY"),
}

var SessionBackend = &cli.StringFlag{
	Name:      "session-backend",
	Usage:     "Where the session token is kept: file or nats",
	Value:     config.SessionBackendFile,
	Validator: oneOf("session backend", validSessionBackends),
	Sources:   cli.EnvVars("CHATTERLY_SESSION_BACKEND"),
}

var SessionFile = &cli.StringFlag{
	Name:        "session-file",
	Usage:       "The session file of the file backend",
	DefaultText: "<user config dir>/chatterly/session.json",
	Sources:     cli.EnvVars("CHATTERLY_SESSION_FILE"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var NATSBucket = &cli.StringFlag{
	Name:    "nats-bucket",
	Usage:   "The NATS KeyValue bucket of the nats backend",
	Value:   "chatterly",
	Sources: cli.EnvVars("NATS_BUCKET"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Serve Prometheus metrics on this address, e.g. :9090",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var Raw = &cli.BoolFlag{
	Name:  "raw",
	Usage: "Dump the raw response instead of the formatted output",
}

var Email = &cli.StringFlag{
	Name:     "email",
	Aliases:  []string{"e"},
	Usage:    "Account email",
	Required: true,
}

var Password = &cli.StringFlag{
	Name:     "password",
	Aliases:  []string{"p"},
	Usage:    "Account password",
	Required: true,
	Sources:  cli.EnvVars("CHATTERLY_PASSWORD"),
}

var Username = &cli.StringFlag{
	Name:     "username",
	Aliases:  []string{"u"},
	Usage:    "Account username",
	Required: true,
}

var Bio = &cli.StringFlag{
	Name:  "bio",
	Usage: "Profile bio",
}

var Location = &cli.StringFlag{
	Name:  "location",
	Usage: "Place name, geocoded into coordinates",
}

var PostType = &cli.StringFlag{
	Name:  "type",
	Usage: fmt.Sprintf("Post type, one of %s", core.PostTypes),
	Validator: oneOf("post type", append([]string{""}, lo.Map(core.PostTypes, func(t core.PostType, _ int) string {
		return string(t)
	})...)),
}

var Radius = &cli.IntFlag{
	Name:  "radius",
	Usage: "Search radius around the location",
	Value: core.DefaultRadius,
}

var Text = &cli.StringFlag{
	Name:     "text",
	Usage:    "Post text",
	Required: true,
}

var Image = &cli.StringFlag{
	Name:  "image",
	Usage: "Path to an image to attach",
}

func ValidateReaction(value string) error {
	return oneOf("reaction", validReactions)(value)
}

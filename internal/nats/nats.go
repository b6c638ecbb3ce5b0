package nats

import (
	"context"
	"log/slog"

	"chatterly/internal/config"

	"github.com/samber/lo"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	appName = "chatterly"
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream
	KV jetstream.KeyValue
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats.NATS")

	nc, err := libnats.Connect(
		lo.Ternary(n.Config.NATSURL != "", n.Config.NATSURL, libnats.DefaultURL),
		libnats.Name(appName),
	)
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	bucket := lo.Ternary(n.Config.NATSBucket != "", n.Config.NATSBucket, appName)

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "chatterly client sessions",
		History:     1,
	})
	if err != nil {
		return err
	}
	n.KV = kv

	n.Logger.Debug("KeyValue ready", "bucket", bucket)

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

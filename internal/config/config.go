package config

import "time"

const (
	SessionBackendFile = "file"
	SessionBackendNATS = "nats"
)

type Config struct {
	LogLevel string `flag:"log-level"`

	APIURL  string        `flag:"api-url"`
	Timeout time.Duration `flag:"timeout"`

	GeocodeURL string `flag:"geocode-url"`
	GeocodeKey string `flag:"geocode-key"`

	SessionBackend string `flag:"session-backend"`
	SessionFile    string `flag:"session-file"`
	NATSURL        string `flag:"nats-url"`
	NATSBucket     string `flag:"nats-bucket"`

	MetricsAddr string `flag:"metrics-addr"`
}

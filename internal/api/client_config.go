package api

import (
	"time"

	"resty.dev/v3"
)

const (
	DefaultBaseURL = "http://localhost:4000/api"
)

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	TransportSettings *resty.TransportSettings

	ResponseMiddlewares []resty.ResponseMiddleware
}

var DefaultConfig = &ClientConfig{
	BaseURL: DefaultBaseURL,
	Timeout: 10 * time.Second,
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	},
}

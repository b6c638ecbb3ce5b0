package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"chatterly/internal/config"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zhulik/pal"
)

// Server exposes the Prometheus registry while a command runs.
type Server struct {
	Logger *slog.Logger
	Config *config.Config

	srv *http.Server
	ln  net.Listener
}

func (s *Server) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.Server")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.srv = &http.Server{
		Addr:              s.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Listen early so a busy port fails the command before it does anything.
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	return nil
}

func (s *Server) Run(_ context.Context) error {
	s.Logger.Info("serving metrics", "addr", s.Addr())

	err := s.srv.Serve(s.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

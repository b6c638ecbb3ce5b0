package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chatterly/internal/config"
	"chatterly/internal/core"

	"github.com/samber/lo"
	"resty.dev/v3"
)

const (
	DefaultURL = "https://api.opencagedata.com/geocode/v1/json"
)

var (
	ErrEmptyQuery = errors.New("location is empty")
	ErrLookup     = errors.New("geocode lookup failed")
)

// https://opencagedata.com/api#response
type response struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocoder resolves places with a single best effort call per lookup.
type Geocoder struct {
	Logger *slog.Logger
	Config *config.Config

	url    string
	key    string
	client *resty.Client
}

func New(url, key string, timeout time.Duration, logger *slog.Logger) *Geocoder {
	g := &Geocoder{Logger: logger}
	g.setup(url, key, timeout)
	return g
}

func (g *Geocoder) Init(_ context.Context) error {
	g.setup(g.Config.GeocodeURL, g.Config.GeocodeKey, g.Config.Timeout)
	return nil
}

func (g *Geocoder) Shutdown(_ context.Context) error {
	return g.client.Close()
}

func (g *Geocoder) setup(url, key string, timeout time.Duration) {
	if g.Logger == nil {
		g.Logger = slog.Default()
	}
	g.Logger = g.Logger.With("component", "geocode.Geocoder")

	g.url = lo.Ternary(url != "", url, DefaultURL)
	g.key = key
	g.client = resty.New().SetTimeout(lo.Ternary(timeout > 0, timeout, 10*time.Second))
}

func (g *Geocoder) Lookup(ctx context.Context, query string) (core.Coordinates, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return core.Coordinates{}, false, ErrEmptyQuery
	}

	res, err := g.client.R().
		WithContext(ctx).
		SetQueryParams(map[string]string{
			"q":   query,
			"key": g.key,
		}).
		SetResult(&response{}).
		Get(g.url)
	if err != nil {
		return core.Coordinates{}, false, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	if res.IsError() {
		return core.Coordinates{}, false, fmt.Errorf("%w: %s", ErrLookup, res.Status())
	}

	result, ok := lo.First(res.Result().(*response).Results)
	if !ok {
		g.Logger.Debug("no geocode result", "query", query)
		return core.Coordinates{}, false, nil
	}

	return core.Coordinates{
		Lat: result.Geometry.Lat,
		Lng: result.Geometry.Lng,
	}, true, nil
}

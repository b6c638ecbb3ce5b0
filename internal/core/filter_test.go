package core_test

import (
	"encoding/json"
	"testing"

	"chatterly/internal/core"

	"github.com/stretchr/testify/require"
)

func TestFilter_Query(t *testing.T) {
	t.Parallel()

	lat, lng := 19.07, 72.87

	cases := []struct {
		name     string
		filter   core.Filter
		expected map[string][]string
	}{
		{
			name:     "empty",
			filter:   core.NewFilter(),
			expected: map[string][]string{},
		},
		{
			name:   "coordinates with radius",
			filter: core.Filter{Lat: &lat, Lng: &lng, Radius: 1200},
			expected: map[string][]string{
				"lat":    {"19.07"},
				"lng":    {"72.87"},
				"radius": {"1200"},
			},
		},
		{
			name:   "default radius",
			filter: core.Filter{Lat: &lat, Lng: &lng},
			expected: map[string][]string{
				"lat":    {"19.07"},
				"lng":    {"72.87"},
				"radius": {"5000"},
			},
		},
		{
			name:     "latitude only",
			filter:   core.Filter{Lat: &lat, Radius: 1200},
			expected: map[string][]string{},
		},
		{
			name:     "longitude only",
			filter:   core.Filter{Lng: &lng, Radius: 1200, PostType: core.PostTypeEvent},
			expected: map[string][]string{"postType": {"event"}},
		},
		{
			name:     "post type verbatim",
			filter:   core.Filter{PostType: "recommend"},
			expected: map[string][]string{"postType": {"recommend"}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.expected, map[string][]string(c.filter.Query()))
		})
	}
}

func TestFilter_Coordinates(t *testing.T) {
	t.Parallel()

	f := core.NewFilter()
	require.False(t, f.HasCoordinates())

	f.SetCoordinates(core.Coordinates{Lat: 1, Lng: 2})
	require.True(t, f.HasCoordinates())
	require.Equal(t, 1.0, *f.Lat)
	require.Equal(t, 2.0, *f.Lng)

	f.ClearCoordinates()
	require.False(t, f.HasCoordinates())
}

func TestCoordinates_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(core.Coordinates{Lat: 19.07, Lng: 72.87})
	require.NoError(t, err)
	require.JSONEq(t, `[72.87, 19.07]`, string(data))

	var c core.Coordinates
	require.NoError(t, json.Unmarshal([]byte(`[1.5, -2]`), &c))
	require.Equal(t, core.Coordinates{Lng: 1.5, Lat: -2}, c)

	require.Error(t, json.Unmarshal([]byte(`[1]`), &c))
}

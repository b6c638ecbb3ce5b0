package core

import (
	"net/url"
	"strconv"
)

const DefaultRadius = 5000

// Filter drives the next post query. Lat and Lng are set only after a
// successful geocode lookup.
type Filter struct {
	LocationName string
	Lat          *float64
	Lng          *float64
	Radius       int
	PostType     PostType
}

func NewFilter() Filter {
	return Filter{Radius: DefaultRadius}
}

func (f Filter) HasCoordinates() bool {
	return f.Lat != nil && f.Lng != nil
}

func (f *Filter) SetCoordinates(c Coordinates) {
	lat, lng := c.Lat, c.Lng
	f.Lat, f.Lng = &lat, &lng
}

func (f *Filter) ClearCoordinates() {
	f.Lat, f.Lng = nil, nil
}

// Query returns the getPosts query. Location parameters travel together or not
// at all.
func (f Filter) Query() url.Values {
	q := url.Values{}

	if f.HasCoordinates() {
		radius := f.Radius
		if radius <= 0 {
			radius = DefaultRadius
		}
		q.Set("lat", strconv.FormatFloat(*f.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(*f.Lng, 'f', -1, 64))
		q.Set("radius", strconv.Itoa(radius))
	}

	if f.PostType != "" {
		q.Set("postType", string(f.PostType))
	}

	return q
}

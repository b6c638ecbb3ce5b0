package forms

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"chatterly/internal/api"
	"chatterly/internal/core"
)

type PostDraft struct {
	Text         string        `validate:"required,max=500"`
	PostType     core.PostType `validate:"required,oneof=recommend help update event"`
	LocationName string

	// Coordinates stays nil until the location is resolved.
	Coordinates *core.Coordinates

	Image     []byte
	ImageName string
}

func newPostDraft() PostDraft {
	return PostDraft{PostType: core.PostTypeRecommend}
}

type CreatePostForm struct {
	Draft PostDraft

	posts    core.PostAPI
	geocoder core.Geocoder

	resolving  atomic.Bool
	submitting atomic.Bool
}

func NewCreatePostForm(posts core.PostAPI, geocoder core.Geocoder) *CreatePostForm {
	return &CreatePostForm{
		Draft:    newPostDraft(),
		posts:    posts,
		geocoder: geocoder,
	}
}

// ResolveLocation geocodes the draft's location name. Any outcome other than
// a hit leaves the draft without coordinates.
func (f *CreatePostForm) ResolveLocation(ctx context.Context) Message {
	if strings.TrimSpace(f.Draft.LocationName) == "" {
		return Failure("Please enter a location name first")
	}

	if !f.resolving.CompareAndSwap(false, true) {
		return Failure(ErrInFlight.Error())
	}
	defer f.resolving.Store(false)

	coords, ok, err := f.geocoder.Lookup(ctx, f.Draft.LocationName)
	if err != nil {
		f.Draft.Coordinates = nil
		return Failure("Error fetching coordinates")
	}
	if !ok {
		f.Draft.Coordinates = nil
		return Failure("No coordinates found for that location")
	}

	f.Draft.Coordinates = &coords
	return Info("Coordinates found: " + coords.String())
}

// Submit sends the draft. Nothing is sent before the location is resolved.
func (f *CreatePostForm) Submit(ctx context.Context) Outcome {
	if f.Draft.Coordinates == nil {
		return Outcome{Message: Failure("Please fetch coordinates first")}
	}

	if err := check(f.Draft); err != nil {
		return invalid(err)
	}

	if !f.submitting.CompareAndSwap(false, true) {
		return Outcome{Message: Failure(ErrInFlight.Error())}
	}
	defer f.submitting.Store(false)

	err := f.posts.CreatePost(ctx, core.NewPost{
		Text:        f.Draft.Text,
		PostType:    f.Draft.PostType,
		Coordinates: *f.Draft.Coordinates,
		Image:       f.Draft.Image,
		ImageName:   f.Draft.ImageName,
	})
	if err != nil {
		return Outcome{Message: Failure(createPostMessage(err))}
	}

	f.Draft = newPostDraft()
	return Outcome{Message: Success("Post created successfully!"), Next: RouteFeed}
}

func createPostMessage(err error) string {
	if msg := api.MessageOf(err, ""); msg != "" {
		return msg
	}
	if errors.Is(err, api.ErrTransport) {
		return err.Error()
	}
	return "Failed to create post"
}

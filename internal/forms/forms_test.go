package forms_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"chatterly/internal/api"
	"chatterly/internal/core"
	"chatterly/internal/forms"
	"chatterly/internal/session"

	"github.com/stretchr/testify/require"
)

var testErr = errors.New("test error")

type fakeAuth struct {
	session *core.Session
	err     error

	logins  int
	signups int
}

func (a *fakeAuth) Signup(context.Context, string, string, string, string) error {
	a.signups++
	return a.err
}

func (a *fakeAuth) Login(context.Context, string, string) (*core.Session, error) {
	a.logins++
	if a.err != nil {
		return nil, a.err
	}
	return a.session, nil
}

type fakePosts struct {
	created []core.NewPost
	err     error
}

func (p *fakePosts) CreatePost(_ context.Context, post core.NewPost) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, post)
	return nil
}

func (p *fakePosts) GetPosts(context.Context, core.Filter) ([]*core.Post, error) { return nil, nil }
func (p *fakePosts) ReplyToPost(context.Context, string, string) error           { return nil }
func (p *fakePosts) ReactToPost(context.Context, string, core.Reaction) error    { return nil }
func (p *fakePosts) FetchReplies(context.Context, string) ([]*core.Reply, error) { return nil, nil }

type fakeGeocoder struct {
	coords core.Coordinates
	ok     bool
	err    error
}

func (g *fakeGeocoder) Lookup(context.Context, string) (core.Coordinates, bool, error) {
	return g.coords, g.ok, g.err
}

type fakeUsers struct {
	user    *core.User
	updated []core.User
	err     error
}

func (u *fakeUsers) GetUser(context.Context) (*core.User, error) {
	return u.user, u.err
}

func (u *fakeUsers) UpdateUser(_ context.Context, user core.User) (*core.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.updated = append(u.updated, user)
	return &user, nil
}

func TestMessage_Failed(t *testing.T) {
	t.Parallel()

	require.True(t, forms.Failure("ok").Failed())
	require.False(t, forms.Success("error free").Failed())
	require.True(t, forms.Message{Text: "Error fetching coordinates"}.Failed())
	require.True(t, forms.Message{Text: "Login FAILED"}.Failed())
	require.False(t, forms.Message{Text: "Post created successfully!"}.Failed())
}

func TestLoginForm(t *testing.T) {
	t.Parallel()

	t.Run("success persists token", func(t *testing.T) {
		t.Parallel()

		sessions := session.NewMemoryStore("")
		form := forms.NewLoginForm(&fakeAuth{session: &core.Session{Token: "tok"}}, sessions)
		form.Draft = forms.LoginDraft{Email: "a@b.c", Password: "pw"}

		out := form.Submit(t.Context())
		require.False(t, out.Message.Failed())
		require.Equal(t, forms.RouteFeed, out.Next)

		token, _ := sessions.Token(t.Context())
		require.Equal(t, "tok", token)
	})

	t.Run("server message on failure", func(t *testing.T) {
		t.Parallel()

		sessions := session.NewMemoryStore("")
		auth := &fakeAuth{err: &api.Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}}
		form := forms.NewLoginForm(auth, sessions)
		form.Draft = forms.LoginDraft{Email: "a@b.c", Password: "pw"}

		out := form.Submit(t.Context())
		require.Equal(t, forms.Failure("Invalid credentials"), out.Message)
		require.Equal(t, forms.RouteNone, out.Next)

		token, _ := sessions.Token(t.Context())
		require.Empty(t, token)
	})

	t.Run("generic message on transport failure", func(t *testing.T) {
		t.Parallel()

		sessions := session.NewMemoryStore("")
		form := forms.NewLoginForm(&fakeAuth{err: fmt.Errorf("%w: %w", api.ErrTransport, testErr)}, sessions)
		form.Draft = forms.LoginDraft{Email: "a@b.c", Password: "pw"}

		out := form.Submit(t.Context())
		require.Equal(t, forms.Failure("Login failed"), out.Message)

		token, _ := sessions.Token(t.Context())
		require.Empty(t, token)
	})

	t.Run("invalid draft", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{}
		form := forms.NewLoginForm(auth, session.NewMemoryStore(""))
		form.Draft = forms.LoginDraft{Email: "not-an-email"}

		out := form.Submit(t.Context())
		require.True(t, out.Message.Failed())
		require.Contains(t, out.Message.Text, "email")
		require.Contains(t, out.Message.Text, "password")
		require.Zero(t, auth.logins)
	})

	t.Run("already logged in", func(t *testing.T) {
		t.Parallel()

		auth := &fakeAuth{}
		form := forms.NewLoginForm(auth, session.NewMemoryStore("existing"))

		out := form.Submit(t.Context())
		require.Equal(t, forms.RouteFeed, out.Next)
		require.Zero(t, auth.logins)
	})
}

func TestSignupForm(t *testing.T) {
	t.Parallel()

	t.Run("success goes to login", func(t *testing.T) {
		t.Parallel()

		sessions := session.NewMemoryStore("")
		auth := &fakeAuth{}
		form := forms.NewSignupForm(auth, sessions)
		form.Draft = forms.SignupDraft{Username: "sai", Email: "a@b.c", Password: "pw"}

		out := form.Submit(t.Context())
		require.Equal(t, forms.RouteLogin, out.Next)
		require.Equal(t, 1, auth.signups)

		token, _ := sessions.Token(t.Context())
		require.Empty(t, token)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		form := forms.NewSignupForm(&fakeAuth{err: testErr}, session.NewMemoryStore(""))
		form.Draft = forms.SignupDraft{Username: "sai", Email: "a@b.c", Password: "pw"}

		out := form.Submit(t.Context())
		require.Equal(t, forms.Failure("Signup failed"), out.Message)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	sessions := session.NewMemoryStore("tok")

	out := forms.Logout(t.Context(), sessions)
	require.Equal(t, forms.RouteLogin, out.Next)

	token, _ := sessions.Token(t.Context())
	require.Empty(t, token)
}

func TestCreatePostForm(t *testing.T) {
	t.Parallel()

	t.Run("requires coordinates", func(t *testing.T) {
		t.Parallel()

		posts := &fakePosts{}
		form := forms.NewCreatePostForm(posts, &fakeGeocoder{})
		form.Draft.Text = "hello"

		out := form.Submit(t.Context())
		require.Equal(t, forms.Failure("Please fetch coordinates first"), out.Message)
		require.Empty(t, posts.created)
	})

	t.Run("resolve and submit", func(t *testing.T) {
		t.Parallel()

		posts := &fakePosts{}
		geo := &fakeGeocoder{coords: core.Coordinates{Lat: 19.07, Lng: 72.87}, ok: true}
		form := forms.NewCreatePostForm(posts, geo)
		form.Draft.Text = "hello"
		form.Draft.PostType = core.PostTypeEvent
		form.Draft.LocationName = "Mumbai"

		msg := form.ResolveLocation(t.Context())
		require.Equal(t, "Coordinates found: 72.87, 19.07", msg.Text)
		require.False(t, msg.Failed())

		out := form.Submit(t.Context())
		require.Equal(t, forms.Success("Post created successfully!"), out.Message)
		require.Equal(t, forms.RouteFeed, out.Next)

		require.Len(t, posts.created, 1)
		require.Equal(t, core.PostTypeEvent, posts.created[0].PostType)
		require.Equal(t, core.Coordinates{Lat: 19.07, Lng: 72.87}, posts.created[0].Coordinates)

		// The draft is reset after a successful submission.
		require.Nil(t, form.Draft.Coordinates)
		require.Empty(t, form.Draft.Text)
		require.Equal(t, core.PostTypeRecommend, form.Draft.PostType)
	})

	t.Run("lookup miss clears coordinates", func(t *testing.T) {
		t.Parallel()

		geo := &fakeGeocoder{coords: core.Coordinates{Lat: 1, Lng: 2}, ok: true}
		form := forms.NewCreatePostForm(&fakePosts{}, geo)
		form.Draft.LocationName = "Somewhere"

		form.ResolveLocation(t.Context())
		require.NotNil(t, form.Draft.Coordinates)

		geo.ok = false
		msg := form.ResolveLocation(t.Context())
		require.Equal(t, "No coordinates found for that location", msg.Text)
		require.Nil(t, form.Draft.Coordinates)

		geo.err = testErr
		msg = form.ResolveLocation(t.Context())
		require.Equal(t, "Error fetching coordinates", msg.Text)
		require.True(t, msg.Failed())
		require.Nil(t, form.Draft.Coordinates)
	})

	t.Run("blank location", func(t *testing.T) {
		t.Parallel()

		form := forms.NewCreatePostForm(&fakePosts{}, &fakeGeocoder{})
		msg := form.ResolveLocation(t.Context())
		require.Equal(t, "Please enter a location name first", msg.Text)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()

		posts := &fakePosts{}
		form := forms.NewCreatePostForm(posts, &fakeGeocoder{})
		form.Draft.Coordinates = &core.Coordinates{}
		form.Draft.Text = string(make([]byte, 501))

		out := form.Submit(t.Context())
		require.True(t, out.Message.Failed())
		require.Contains(t, out.Message.Text, "text (max)")
		require.Empty(t, posts.created)
	})

	t.Run("failure messages", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			err      error
			expected string
		}{
			{&api.Error{Status: http.StatusBadRequest, Message: "Image too large"}, "Image too large"},
			{&api.Error{Status: http.StatusInternalServerError}, "Failed to create post"},
			{fmt.Errorf("%w: %w", api.ErrTransport, testErr), "request failed: test error"},
		}

		for _, c := range cases {
			form := forms.NewCreatePostForm(&fakePosts{err: c.err}, &fakeGeocoder{})
			form.Draft.Text = "hello"
			form.Draft.Coordinates = &core.Coordinates{}

			out := form.Submit(t.Context())
			require.Equal(t, forms.Failure(c.expected), out.Message)
			require.NotNil(t, form.Draft.Coordinates)
		}
	})
}

func TestProfileForm(t *testing.T) {
	t.Parallel()

	t.Run("load and save", func(t *testing.T) {
		t.Parallel()

		users := &fakeUsers{user: &core.User{Username: "sai", Email: "a@b.c", Bio: "hi"}}
		form := forms.NewProfileForm(users)

		require.True(t, form.Load(t.Context()).Empty())
		require.Equal(t, "sai", form.Draft.Username)

		form.Draft.Bio = "updated"
		out := form.Save(t.Context())
		require.Equal(t, forms.Success("Profile updated successfully!"), out.Message)
		require.Equal(t, []core.User{{Username: "sai", Email: "a@b.c", Bio: "updated"}}, users.updated)
		require.Equal(t, &core.User{Username: "sai", Email: "a@b.c", Bio: "updated"}, form.User())
	})

	t.Run("load failure", func(t *testing.T) {
		t.Parallel()

		form := forms.NewProfileForm(&fakeUsers{err: testErr})
		require.Equal(t, forms.Failure("Failed to load user"), form.Load(t.Context()))
	})

	t.Run("save failure", func(t *testing.T) {
		t.Parallel()

		form := forms.NewProfileForm(&fakeUsers{err: &api.Error{Status: http.StatusConflict, Message: "Email taken"}})
		form.Draft = forms.ProfileDraft{Username: "sai", Email: "a@b.c"}

		require.Equal(t, forms.Failure("Email taken"), form.Save(t.Context()).Message)

		form = forms.NewProfileForm(&fakeUsers{err: testErr})
		form.Draft = forms.ProfileDraft{Username: "sai", Email: "a@b.c"}

		require.Equal(t, forms.Failure("Failed to update profile"), form.Save(t.Context()).Message)
	})
}

package core

import (
	"context"
)

const SessionTokenKey = "token"

// SessionStore persists the auth token between invocations. Token returns an
// empty string when there is no session.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type AuthAPI interface {
	Signup(ctx context.Context, username, email, password, bio string) error
	Login(ctx context.Context, email, password string) (*Session, error)
}

type UserAPI interface {
	GetUser(ctx context.Context) (*User, error)
	UpdateUser(ctx context.Context, user User) (*User, error)
}

type PostAPI interface {
	CreatePost(ctx context.Context, post NewPost) error
	GetPosts(ctx context.Context, filter Filter) ([]*Post, error)
	ReplyToPost(ctx context.Context, postID, text string) error
	ReactToPost(ctx context.Context, postID string, reaction Reaction) error
	FetchReplies(ctx context.Context, postID string) ([]*Reply, error)
}

// Geocoder resolves free text into a point. ok is false when the provider has
// no result for the query.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (coords Coordinates, ok bool, err error)
}

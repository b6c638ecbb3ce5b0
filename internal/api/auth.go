package api

import (
	"context"

	"chatterly/internal/core"
)

const (
	signupPath = "/auth/signup"
	loginPath  = "/auth/login"
)

func (c *Client) Signup(ctx context.Context, username, email, password, bio string) error {
	_, err := check(c.r(ctx, "signup").
		SetBody(map[string]string{
			"username": username,
			"email":    email,
			"password": password,
			"bio":      bio,
		}).
		Post(signupPath))
	return err
}

func (c *Client) Login(ctx context.Context, email, password string) (*core.Session, error) {
	res, err := check(c.r(ctx, "login").
		SetBody(map[string]string{
			"email":    email,
			"password": password,
		}).
		SetResult(&core.Session{}).
		Post(loginPath))
	if err != nil {
		return nil, err
	}

	return res.Result().(*core.Session), nil
}

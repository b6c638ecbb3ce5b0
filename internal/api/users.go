package api

import (
	"context"

	"chatterly/internal/core"
)

const (
	getUserPath    = "/user/getUser"
	updateUserPath = "/user/updateUser"
)

func (c *Client) GetUser(ctx context.Context) (*core.User, error) {
	req, err := c.authed(ctx, "getUser")
	if err != nil {
		return nil, err
	}

	res, err := check(req.
		SetResult(&core.User{}).
		Get(getUserPath))
	if err != nil {
		return nil, err
	}
	return res.Result().(*core.User), nil
}

// UpdateUser sends the whole profile, the backend has no partial updates.
func (c *Client) UpdateUser(ctx context.Context, user core.User) (*core.User, error) {
	req, err := c.authed(ctx, "updateUser")
	if err != nil {
		return nil, err
	}

	res, err := check(req.
		SetBody(user).
		SetResult(&core.User{}).
		Put(updateUserPath))
	if err != nil {
		return nil, err
	}
	return res.Result().(*core.User), nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"

	"chatterly/internal/core"
)

const (
	createPostPath   = "/posts/create"
	getPostsPath     = "/posts/"
	replyToPostPath  = "/posts/reply/{id}"
	reactToPostPath  = "/posts/react/{id}"
	fetchRepliesPath = "/posts/replies/{id}"
)

func (c *Client) CreatePost(ctx context.Context, post core.NewPost) error {
	req, err := c.authed(ctx, "createPost")
	if err != nil {
		return err
	}

	coords, err := json.Marshal(post.Coordinates)
	if err != nil {
		return err
	}

	req.SetMultipartFormData(map[string]string{
		"text":        post.Text,
		"postType":    string(post.PostType),
		"coordinates": string(coords),
	})

	if len(post.Image) > 0 {
		req.SetFileReader("image", post.ImageName, bytes.NewReader(post.Image))
	}

	_, err = check(req.Post(createPostPath))
	return err
}

func (c *Client) GetPosts(ctx context.Context, filter core.Filter) ([]*core.Post, error) {
	type Posts struct {
		Posts []*core.Post `json:"posts"`
	}

	req, err := c.authed(ctx, "getPosts")
	if err != nil {
		return nil, err
	}

	res, err := check(req.
		SetQueryParamsFromValues(filter.Query()).
		SetResult(&Posts{}).
		Get(getPostsPath))
	if err != nil {
		return nil, err
	}

	return res.Result().(*Posts).Posts, nil
}

func (c *Client) ReplyToPost(ctx context.Context, postID, text string) error {
	req, err := c.authed(ctx, "replyToPost")
	if err != nil {
		return err
	}

	_, err = check(req.
		SetPathParam("id", postID).
		SetBody(map[string]string{"text": text}).
		Post(replyToPostPath))
	return err
}

func (c *Client) ReactToPost(ctx context.Context, postID string, reaction core.Reaction) error {
	req, err := c.authed(ctx, "reactToPost")
	if err != nil {
		return err
	}

	_, err = check(req.
		SetPathParam("id", postID).
		SetBody(map[string]string{"action": string(reaction)}).
		Post(reactToPostPath))
	return err
}

func (c *Client) FetchReplies(ctx context.Context, postID string) ([]*core.Reply, error) {
	type Replies struct {
		Replies []*core.Reply `json:"replies"`
	}

	req, err := c.authed(ctx, "fetchReplies")
	if err != nil {
		return nil, err
	}

	res, err := check(req.
		SetPathParam("id", postID).
		SetResult(&Replies{}).
		Get(fetchRepliesPath))
	if err != nil {
		return nil, err
	}

	return res.Result().(*Replies).Replies, nil
}

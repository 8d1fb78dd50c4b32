package api

import (
	"context"
	"net/http"
)

func (c *Client) CreateHome(ctx context.Context, name, password, image string) (string, error) {
	in := map[string]string{"name": name, "password": password, "image": image}
	var out idResponse
	if _, err := c.call(ctx, http.MethodPost, "/createHome", true, in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) JoinHome(ctx context.Context, name, handle, password string) error {
	in := map[string]string{"name": name, "handle": handle, "password": password}
	_, err := c.call(ctx, http.MethodPost, "/joinHome", true, in, nil)
	return err
}

func (c *Client) LeaveHome(ctx context.Context, handle string) error {
	in := map[string]string{"handle": handle}
	_, err := c.call(ctx, http.MethodPost, "/leaveHome", true, in, nil)
	return err
}

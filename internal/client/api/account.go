package api

import (
	"context"
	"net/http"
)

// Register creates an account and returns its id.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	var out idResponse
	if _, err := c.call(ctx, http.MethodPost, "/user/register", false, in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Login authenticates and remembers the token for gated calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	in := map[string]string{"email": email, "password": password}

	var out Session
	h, err := c.call(ctx, http.MethodPost, "/user/login", false, in, &out)
	if err != nil {
		return nil, err
	}
	if t := h.Get(tokenHeader); t != "" {
		out.Token = t
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Logout forgets the token.
func (c *Client) Logout() { c.SetToken("") }

// WhoAmI returns the user id the server reads from the current token.
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	var out struct {
		Data string `json:"data"`
	}
	if _, err := c.call(ctx, http.MethodGet, "/testToken", true, nil, &out); err != nil {
		return "", err
	}
	return out.Data, nil
}

func (c *Client) ChangeHandle(ctx context.Context, handle, newHandle, password string) error {
	in := map[string]string{"handle": handle, "newHandle": newHandle, "password": password}
	_, err := c.call(ctx, http.MethodPost, "/changeUsername", true, in, nil)
	return err
}

func (c *Client) ChangeEmail(ctx context.Context, handle, email, password string) error {
	in := map[string]string{"handle": handle, "email": email, "password": password}
	_, err := c.call(ctx, http.MethodPost, "/changeEmail", true, in, nil)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, handle, password, newPassword string) error {
	in := map[string]string{"handle": handle, "password": password, "newPassword": newPassword}
	_, err := c.call(ctx, http.MethodPost, "/changePassword", true, in, nil)
	return err
}

// ChangeImage returns the server's warning, if any, about the old image.
func (c *Client) ChangeImage(ctx context.Context, handle, password, image string) (string, error) {
	in := map[string]string{"handle": handle, "password": password, "image": image}
	var out successResponse
	if _, err := c.call(ctx, http.MethodPost, "/changeImage", true, in, &out); err != nil {
		return "", err
	}
	return out.Warning, nil
}

func (c *Client) ChangeSettings(ctx context.Context, handle string, settings Settings) error {
	in := struct {
		Handle   string   `json:"handle"`
		Settings Settings `json:"settings"`
	}{handle, settings}
	_, err := c.call(ctx, http.MethodPost, "/changeSettings", true, in, nil)
	return err
}

// DeleteAccount removes the account and forgets the token.
func (c *Client) DeleteAccount(ctx context.Context, handle, password string) (string, error) {
	in := map[string]string{"handle": handle, "password": password}
	var out successResponse
	if _, err := c.call(ctx, http.MethodPost, "/deleteAccount", true, in, &out); err != nil {
		return "", err
	}
	c.Logout()
	return out.Warning, nil
}

// UploadURL asks for a presigned upload target.
func (c *Client) UploadURL(ctx context.Context, fileName, fileType string) (*UploadURL, error) {
	in := map[string]string{"fileName": fileName, "fileType": fileType}
	var out UploadURL
	if _, err := c.call(ctx, http.MethodPost, "/aws/getS3URL", false, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

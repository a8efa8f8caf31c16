package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// Users lists the user directory relative to the signed-in user.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// Search finds users by name or email fragment.
func (c *Client) Search(ctx context.Context, query string) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	path := "/api/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// Follow creates a follow relationship with the given user.
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/api/follow/"+url.PathEscape(userID), nil, nil)
}

// Unfollow removes a follow relationship.
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/follow/"+url.PathEscape(userID), nil, nil)
}

// CheckFollow reports whether the signed-in user follows userID.
func (c *Client) CheckFollow(ctx context.Context, userID string) (bool, error) {
	var out struct {
		IsFollowing bool `json:"is_following"`
	}
	path := "/api/follow/" + url.PathEscape(userID) + "/check"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.IsFollowing, nil
}

// Profile fetches a user's profile, including follower counts.
func (c *Client) Profile(ctx context.Context, userID string) (model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile/"+url.PathEscape(userID), nil, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// UpdateProfile posts a multipart form with fields user_id, bio, and an
// optional avatar file.
func (c *Client) UpdateProfile(ctx context.Context, userID, bio, avatarPath string) (model.User, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("user_id", userID); err != nil {
		return model.User{}, err
	}
	if err := w.WriteField("bio", bio); err != nil {
		return model.User{}, err
	}
	if avatarPath != "" {
		f, err := os.Open(avatarPath)
		if err != nil {
			return model.User{}, fmt.Errorf("avatar: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("avatar", filepath.Base(avatarPath))
		if err != nil {
			return model.User{}, err
		}
		if _, err := io.Copy(part, f); err != nil {
			return model.User{}, err
		}
	}
	if err := w.Close(); err != nil {
		return model.User{}, err
	}

	var out struct {
		User model.User `json:"user"`
	}
	if err := c.doRaw(ctx, http.MethodPost, "/api/profile/", &buf, w.FormDataContentType(), &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

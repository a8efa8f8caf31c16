package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// Messages fetches the conversation with the given peer, backend-sorted.
func (c *Client) Messages(ctx context.Context, peerID string) ([]model.ChatMessage, error) {
	var out struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	path := "/api/chat/messages/" + url.PathEscape(peerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendMessage posts one direct message.
func (c *Client) SendMessage(ctx context.Context, receiverID, text string) (model.ChatMessage, error) {
	body := map[string]string{"receiver_id": receiverID, "message": text}
	var out struct {
		Message model.ChatMessage `json:"chat_message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", body, &out); err != nil {
		return model.ChatMessage{}, err
	}
	return out.Message, nil
}

// MarkRead marks every message from the peer as read.
func (c *Client) MarkRead(ctx context.Context, peerID string) error {
	return c.do(ctx, http.MethodPost, "/api/chat/read/"+url.PathEscape(peerID), nil, nil)
}

// Notification reports whether any unread message is waiting.
func (c *Client) Notification(ctx context.Context) (bool, error) {
	var out struct {
		HasUnread bool `json:"has_unread"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/chat/notification", nil, &out); err != nil {
		return false, err
	}
	return out.HasUnread, nil
}

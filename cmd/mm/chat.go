package main

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/mockmate/mockmate-cli/internal/poll"
)

const (
	chatPollInterval   = 3 * time.Second
	notifyPollInterval = 5 * time.Second
)

// chatView opens an interactive chat panel with one peer. While the panel is
// open the message list is re-fetched every 3s and the unread-notification
// flag every 5s; both pollers stop deterministically on teardown.
func (a *app) chatView(ctx context.Context, peerID string, in io.Reader) error {
	if err := validID(peerID); err != nil {
		return err
	}
	self := a.store.User()

	// Opening the panel marks the conversation read. Best effort.
	if err := a.api.MarkRead(ctx, peerID); err != nil {
		a.log.Warn("mark read failed")
	}

	a.view.Headingf("chat with %s", peerID)
	a.view.Printf("type a message and press enter; /quit leaves\n")

	// Last rendered length; the poller prints only the tail. The poller
	// goroutine is the sole writer after Start, so no lock is needed.
	seen := 0
	messages := poll.New(chatPollInterval, func(ctx context.Context) (func(), error) {
		msgs, err := a.api.Messages(ctx, peerID)
		if err != nil {
			return nil, err
		}
		return func() {
			if len(msgs) > seen {
				a.view.ChatTranscript(self.ID, msgs[seen:])
				seen = len(msgs)
			}
		}, nil
	}, a.log)

	wasUnread := false
	notify := poll.New(notifyPollInterval, func(ctx context.Context) (func(), error) {
		unread, err := a.api.Notification(ctx)
		if err != nil {
			return nil, err
		}
		return func() {
			if unread && !wasUnread {
				a.view.Warnf("* you have unread messages in another conversation")
			}
			wasUnread = unread
		}, nil
	}, a.log)

	messages.Start(ctx)
	notify.Start(ctx)
	defer notify.Stop()
	defer messages.Stop()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "/quit" {
			break
		}
		if _, err := a.api.SendMessage(ctx, peerID, line); err != nil {
			a.view.Errorf("send: %v", err)
			a.view.TryAgain()
			continue
		}
	}
	return nil
}

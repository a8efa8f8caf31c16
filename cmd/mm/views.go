package main

import (
	"context"

	"github.com/mockmate/mockmate-cli/internal/model"
	"github.com/mockmate/mockmate-cli/internal/session"
)

// register creates an account; the user logs in afterwards.
func (a *app) register(ctx context.Context, username, email, password string) error {
	f := registerForm{Username: username, Email: email, Password: password}
	if err := checkForm(f); err != nil {
		return err
	}
	u, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	a.view.Successf("registered %s", u.Username)
	a.view.Printf("run: mm login -email %s -password ...\n", email)
	return nil
}

// login authenticates and persists the session cookies atomically with the
// in-memory state change.
func (a *app) login(ctx context.Context, email, password string) error {
	f := loginForm{Email: email, Password: password}
	if err := checkForm(f); err != nil {
		return err
	}
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	tokens := model.Tokens{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}
	if err := a.store.SetAuth(res.User, tokens); err != nil {
		return err
	}
	a.view.Successf("signed in as %s", res.User.Username)
	return nil
}

// whoami prints the cached user and the token's decoded subject. The claim
// is labelled unverified: the client never checks the signature.
func (a *app) whoami() error {
	u := a.store.User()
	if u == nil {
		a.view.Printf("not signed in\n")
		return nil
	}
	a.view.Printf("user:  %s <%s> (id %s)\n", u.Username, u.Email, u.ID)
	if claims := session.DecodeToken(a.store.AccessToken()); claims != nil {
		a.view.Printf("token subject (unverified): %s\n", claims.UserID)
		if claims.ExpiresAt != nil {
			a.view.Printf("token expires: %s\n", claims.ExpiresAt.Local())
		}
	}
	return nil
}

// dashboard shows the results summary; it is also the redirect target for
// auth-only views.
func (a *app) dashboard(ctx context.Context) error {
	summary, err := a.api.Results(ctx)
	if err != nil {
		return err
	}
	a.view.ResultsSummary(summary)
	return nil
}

func (a *app) listUsers(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		return err
	}
	a.view.UserTable(users)
	return nil
}

func (a *app) search(ctx context.Context, query string) error {
	if query == "" {
		a.view.Warnf("need -q <query>")
		return nil
	}
	users, err := a.api.Search(ctx, query)
	if err != nil {
		return err
	}
	a.view.UserTable(users)
	return nil
}

func (a *app) setFollow(ctx context.Context, userID string, follow bool) error {
	if err := validID(userID); err != nil {
		return err
	}
	if follow {
		if err := a.api.Follow(ctx, userID); err != nil {
			return err
		}
		a.view.Successf("followed %s", userID)
		return nil
	}
	if err := a.api.Unfollow(ctx, userID); err != nil {
		return err
	}
	a.view.Successf("unfollowed %s", userID)
	return nil
}

// showProfile renders a user's profile; with no id it shows the signed-in
// user, for another user it also notes the follow relationship.
func (a *app) showProfile(ctx context.Context, userID string) error {
	self := a.store.User()
	if userID == "" {
		userID = self.ID
	} else if err := validID(userID); err != nil {
		return err
	}
	u, err := a.api.Profile(ctx, userID)
	if err != nil {
		return err
	}
	a.view.Profile(u)
	if userID != self.ID {
		following, err := a.api.CheckFollow(ctx, userID)
		if err == nil && following {
			a.view.Printf("you follow this user\n")
		}
	}
	return nil
}

func (a *app) editProfile(ctx context.Context, bio, avatarPath string) error {
	if err := checkForm(profileForm{Bio: bio}); err != nil {
		return err
	}
	self := a.store.User()
	u, err := a.api.UpdateProfile(ctx, self.ID, bio, avatarPath)
	if err != nil {
		return err
	}
	a.view.Successf("profile updated")
	a.view.Profile(u)
	return nil
}

func (a *app) notify(ctx context.Context) error {
	unread, err := a.api.Notification(ctx)
	if err != nil {
		return err
	}
	if unread {
		a.view.Headingf("you have unread messages")
	} else {
		a.view.Printf("no unread messages\n")
	}
	return nil
}

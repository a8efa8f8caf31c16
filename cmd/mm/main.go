// Command mm is a terminal client for the MockMate exam-practice platform.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mockmate/mockmate-cli/internal/api"
	"github.com/mockmate/mockmate-cli/internal/config"
	"github.com/mockmate/mockmate-cli/internal/errs"
	"github.com/mockmate/mockmate-cli/internal/guard"
	"github.com/mockmate/mockmate-cli/internal/session"
	"github.com/mockmate/mockmate-cli/internal/ui"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `mm CLI
Usage:
  mm [-backend URL] [-v] <cmd> [args]

Commands:
  version
  register      -username <name> -email <email> -password <pw>
  login         -email <email> -password <pw>       (saves session cookies)
  logout
  whoami
  dashboard                                         (results summary)
  results
  users
  search        -q <query>
  follow        -id <user id>
  unfollow      -id <user id>
  profile       [-id <user id>]
  profile-edit  -bio <text> [-avatar <file>]
  exam          -type <exam type>                   (interactive attempt)
  chat          -with <user id>                     (interactive, polls)
  notify
`)
	os.Exit(2)
}

// app wires the session, API client, and renderer for every view. The
// session is an explicit object handed to views, never a global.
type app struct {
	store *session.Store
	api   *api.Client
	view  *ui.View
	log   *zap.Logger
}

func main() {
	backend := flag.String("backend", "", "backend base URL (overrides MOCKMATE_BACKEND_URL)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg := config.Load()
	if *backend != "" {
		cfg.BackendURL = *backend
	}

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	store := session.NewStore(session.NewJar())
	a := &app{
		store: store,
		api:   api.New(cfg.BackendURL, cfg.Timeout, store.AccessToken, log),
		view:  ui.New(os.Stdout),
		log:   log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, cmd, args); err != nil {
		a.fail(err)
	}
}

// run dispatches one command. Every page-like command goes through the
// route guard first.
func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {

	case "version":
		fmt.Printf("mm %s (%s)\n", version, buildDate)
		return nil

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathRegister, func(ctx context.Context) error {
			return a.register(ctx, *username, *email, *password)
		})

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathLogin, func(ctx context.Context) error {
			return a.login(ctx, *email, *password)
		})

	case "logout":
		if err := a.store.Logout(); err != nil {
			return err
		}
		a.view.Successf("signed out")
		return nil

	case "whoami":
		return a.whoami()

	case "dashboard":
		return a.visit(ctx, guard.PathDashboard, a.dashboard)

	case "results":
		return a.visit(ctx, guard.PathResult, a.dashboard)

	case "users":
		return a.visit(ctx, guard.PathCommunity, a.listUsers)

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		q := fs.String("q", "", "query")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathCommunity, func(ctx context.Context) error {
			return a.search(ctx, *q)
		})

	case "follow", "unfollow":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "user id")
		_ = fs.Parse(args)
		follow := cmd == "follow"
		return a.visit(ctx, guard.PathCommunity, func(ctx context.Context) error {
			return a.setFollow(ctx, *id, follow)
		})

	case "profile":
		fs := flag.NewFlagSet("profile", flag.ExitOnError)
		id := fs.String("id", "", "user id (default: you)")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathProfile, func(ctx context.Context) error {
			return a.showProfile(ctx, *id)
		})

	case "profile-edit":
		fs := flag.NewFlagSet("profile-edit", flag.ExitOnError)
		bio := fs.String("bio", "", "bio text")
		avatar := fs.String("avatar", "", "avatar image file")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathProfile, func(ctx context.Context) error {
			return a.editProfile(ctx, *bio, *avatar)
		})

	case "exam":
		fs := flag.NewFlagSet("exam", flag.ExitOnError)
		examType := fs.String("type", "writing", "exam type")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathCommunity, func(ctx context.Context) error {
			return a.examView(ctx, *examType, os.Stdin)
		})

	case "chat":
		fs := flag.NewFlagSet("chat", flag.ExitOnError)
		with := fs.String("with", "", "peer user id")
		_ = fs.Parse(args)
		return a.visit(ctx, guard.PathChat, func(ctx context.Context) error {
			return a.chatView(ctx, *with, os.Stdin)
		})

	case "notify":
		return a.visit(ctx, guard.PathChat, a.notify)

	default:
		usage()
		return nil
	}
}

// visit runs the guard for a path and either renders the view or redirects.
// A redirect renders nothing from the requested view.
func (a *app) visit(ctx context.Context, path string, render func(ctx context.Context) error) error {
	switch guard.Decide(a.store.IsAuthenticated(), path) {
	case guard.RedirectLogin:
		a.view.Warnf("you are not signed in")
		a.view.Printf("run: mm login -email <email> -password <password>\n")
		return nil
	case guard.RedirectDashboard:
		a.view.Warnf("already signed in, showing the dashboard")
		return a.dashboard(ctx)
	default:
		return render(ctx)
	}
}

// fail prints one command-level error and exits non-zero. Errors inside
// interactive views are handled inline and never reach here.
func (a *app) fail(err error) {
	switch {
	case errors.Is(err, errs.ErrNoBackendURL):
		a.view.Errorf("no backend configured: set MOCKMATE_BACKEND_URL or pass -backend")
	case errors.Is(err, errs.ErrUnauthorized):
		a.view.Errorf("%v", err)
		a.view.Printf("your session may have expired; run: mm login\n")
	default:
		a.view.Errorf("%v", err)
		a.view.TryAgain()
	}
	os.Exit(1)
}

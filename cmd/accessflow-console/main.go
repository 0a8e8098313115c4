// Command accessflow-console drives the dashboard session lifecycle from the
// terminal. Each invocation is one application instance: the controller
// restores any persisted session before running the requested command, so a
// login in one run is still active in the next.
//
// Usage:
//
//	accessflow-console login <email> <password>
//	accessflow-console logout
//	accessflow-console whoami
//	accessflow-console panels
//	accessflow-console open <panel>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/accessflow/accessflow/internal/console"
	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
	"github.com/accessflow/accessflow/internal/core/service"
	"github.com/accessflow/accessflow/internal/infrastructure/config"
	redisdb "github.com/accessflow/accessflow/internal/infrastructure/db/redis"
	"github.com/accessflow/accessflow/internal/sessionstore"
	"github.com/accessflow/accessflow/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx := context.Background()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("session store init failed")
	}
	defer cleanup()

	client := console.NewClient(cfg.Console.AuthURL, cfg.Console.RequestTimeout)
	controller := service.NewSessionController(client, store, log)
	controller.Restore(ctx)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(ctx, controller, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, controller *service.SessionController, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 2 {
			usage()
			return errors.New("login needs an email and a password")
		}
		sess, err := controller.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", sess.User.Name, sess.User.Role)
		printPanels(controller.VisiblePanels())
		return nil

	case "logout":
		if err := controller.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil

	case "whoami":
		user, ok := controller.CurrentUser()
		if !ok {
			return domain.ErrNotAuthenticated
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
		return nil

	case "panels":
		if _, ok := controller.CurrentUser(); !ok {
			return domain.ErrNotAuthenticated
		}
		printPanels(controller.VisiblePanels())
		return nil

	case "open":
		if len(args) != 1 {
			usage()
			return errors.New("open needs a panel id")
		}
		panel, err := controller.RequestPanel(domain.PanelID(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s (%s)\n", panel.Label, panel.ID)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	switch cfg.Console.SessionBackend {
	case "redis":
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return sessionstore.NewRedisStore(rdb, "accessflow"), func() { _ = rdb.Close() }, nil
	default:
		store, err := sessionstore.NewFileStore(cfg.Console.SessionFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func printPanels(panels []domain.Panel) {
	fmt.Println("Panels:")
	for _, p := range panels {
		fmt.Printf("  %-10s %s\n", p.ID, p.Label)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: accessflow-console <login|logout|whoami|panels|open> [args]")
}

// Command wheretogo is a terminal client for the WhereToGo services. It
// keeps working from local state when services are down.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/client"
	"github.com/johanfuertv/WhereToGo-App/pkg/config"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{"status", "show which services are reachable", runStatus},
	{"login", "-email EMAIL -password PASSWORD", runLogin},
	{"register", "-name NAME -email EMAIL -password PASSWORD [-role traveler|business]", runRegister},
	{"logout", "sign out", runLogout},
	{"whoami", "show the signed-in user", runWhoami},
	{"password", "-current PASSWORD -new PASSWORD", runPassword},
	{"favorites", "list | add -id ID -name NAME -type TYPE -location LOC | remove -id ID", runFavorites},
	{"rate", "-place ID -type TYPE -score 1-5", runRate},
	{"unrate", "-place ID -type TYPE", runUnrate},
	{"review", "-place ID -type TYPE -score 1-5 -comment TEXT", runReview},
	{"place", "-place ID -type TYPE", runPlace},
	{"mine", "ratings | reviews", runMine},
	{"notifications", "list | read -id ID | read-all", runNotifications},
}

type app struct {
	client *client.Client
	out    io.Writer
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if os.Getenv("WHERETOGO_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{client: client.New(cfg.Client), out: os.Stdout}
	if err := dispatch(ctx, a, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		stop()
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, a *app, name string, args []string) error {
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, a, args)
		}
	}
	usage(os.Stderr)
	return fmt.Errorf("unknown command %q", name)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: wheretogo <command> [flags]")
	sorted := append([]command(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	for _, c := range sorted {
		fmt.Fprintf(w, "  %-14s %s\n", c.name, c.usage)
	}
}

func describe(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) warn(msg string, err error) {
	log.Warn().Err(err).Msg(msg)
}

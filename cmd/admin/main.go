// Command admin manages groups and accounts directly in the store.
//
// Usage:
//
//	admin [-config path] create-group -title T -slug S [-description D]
//	admin [-config path] delete-group -slug S
//	admin [-config path] create-user -username U -password P
//	admin [-config path] delete-user -username U
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/yatube/internal/auth"
	"github.com/mmynk/yatube/internal/config"
	"github.com/mmynk/yatube/internal/storage/sqlstore"
	"github.com/mmynk/yatube/pkg/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Logging.Level))

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store, err := sqlstore.Open(dialect, cfg.Database.DSN)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	cmd := &commands{
		store:         store,
		authenticator: auth.NewPasswordAuthenticator(store),
		out:           os.Stdout,
	}
	if err := cmd.run(context.Background(), flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: admin [-config path] <command> [flags]

Commands:
  create-group  -title T -slug S [-description D]
  delete-group  -slug S
  create-user   -username U -password P
  delete-user   -username U

Global flags:
`)
	flag.PrintDefaults()
}

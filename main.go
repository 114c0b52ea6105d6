package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"liga/cmd"
	"liga/config"
	"liga/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) > 1 {
		if err := runCommand(ctx, os.Args[1], os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func runCommand(ctx context.Context, command string, args []string) error {
	switch command {
	case "migrate":
		return handleMigrationCommand(args)
	case "settle":
		if len(args) < 1 {
			return fmt.Errorf("usage: liga settle <match-id> [actor-user-id]")
		}
		var actor *string
		if len(args) > 1 {
			actor = &args[1]
		}
		return cmd.Settle(ctx, args[0], actor)
	case "recompute-standings":
		if len(args) < 1 {
			return fmt.Errorf("usage: liga recompute-standings <zone-id>")
		}
		return cmd.RecomputeStandings(ctx, args[0])
	case "serve":
		return cmd.Run(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: liga migrate [up|down|status] [args...]")
	}

	databaseURL := config.Get().GetDatabaseURL()
	switch args[0] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

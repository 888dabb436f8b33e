package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mutual-aid/config"
	"mutual-aid/pkg/database"
)

const usage = `
Neighborhood Help Portal - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create or update the users, help_requests and chat_messages tables
  status      Show database connection status and row counts
  seed-dev    Seed demo residents, helpers, requests and chat
  reset       Drop the portal tables and re-run migrations (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
  STORE_DRIVER=mysql go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Fatalf("STORE_DRIVER=memory has no schema to migrate")
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runSeedDevelopment(db)
	case "reset":
		runReset(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

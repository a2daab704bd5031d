package main

import (
	"fmt"
	"os"

	"github.com/trendlens/backend/internal/config"
	"github.com/trendlens/backend/internal/database"
	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/seed"
	"github.com/trendlens/backend/internal/util"
)

func main() {
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	seeder := seed.NewSeeder(db, 0)

	switch command {
	case "dev":
		count := 20
		if len(os.Args) > 2 {
			count = util.ParseInt(os.Args[2], count)
		}
		err = seeder.SeedDev(count)
	case "clean":
		if !cfg.IsDevelopment() {
			fmt.Fprintln(os.Stderr, "seed clean refuses to run outside development")
			os.Exit(1)
		}
		err = seeder.Clean()
	default:
		fmt.Println("Usage: seed [dev [count]|clean]")
		fmt.Println("  dev    - Create demo accounts (default 20, password password123)")
		fmt.Println("  clean  - Remove all users (development only)")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed %s failed: %v\n", command, err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"makemeet/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	var (
		command = flag.String("command", "", "Migration command: up, down, version")
		steps   = flag.Int("steps", 0, "Number of migration steps (for down)")
	)
	flag.Parse()

	if *command == "" {
		fmt.Println("Usage: go run cmd/migrate/main.go -command [up|down|version] [options]")
		fmt.Println("Commands:")
		fmt.Println("  up      - Apply all pending migrations")
		fmt.Println("  down    - Rollback migrations")
		fmt.Println("  version - Show current migration version")
		fmt.Println("")
		fmt.Println("Options:")
		fmt.Println("  -steps N - Number of steps for down")
		os.Exit(1)
	}

	cfg := config.NewConfig()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatalf("Failed to initialize migrations: %v", err)
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration up failed: %v", err)
		}
		fmt.Println("Migrations applied")
	case "down":
		n := *steps
		if n == 0 {
			n = 1
		}
		if err := m.Steps(-n); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		fmt.Printf("Rolled back %d migration(s)\n", n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		fmt.Printf("Version: %d, dirty: %v\n", version, dirty)
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

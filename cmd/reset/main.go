// Command reset drops every ledger table and recreates the empty schema.
// All data is lost.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/osse101/NemoBot_Go/internal/config"
	"github.com/osse101/NemoBot_Go/internal/database"
	"github.com/osse101/NemoBot_Go/internal/database/schema"
)

func main() {
	force := flag.Bool("force", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	target := cfg.DBPath
	if cfg.DBDriver == config.DriverPostgres {
		target = cfg.DBName + " on " + cfg.DBHost
	}
	if !*force && !confirm(fmt.Sprintf("Drop all tables in %s (%s)? [y/N] ", target, cfg.DBDriver)) {
		fmt.Println("Aborted.")
		return
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.DB().Close()

	manager := schema.NewManager(store)
	if err := manager.DropAll(ctx); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}
	if err := manager.Initialize(ctx); err != nil {
		log.Fatalf("Failed to recreate schema: %v", err)
	}
	fmt.Println("Database reset complete.")
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/workforce-portal/internal/store/migrations"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded schema migrations to the database file",
	}
	migrateRollback bool
	migrateStatus   bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.Flags().BoolVarP(&migrateStatus, "status", "s", false, "print the state of every migration and exit")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Database.Path == "" {
		log.Fatal("database.path is empty; in-memory databases are migrated at boot")
	}

	db, err := goose.OpenDBWithDriver("sqlite3", cfg.Database.Path)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		log.Fatalf("goose: failed to create provider: %v", err)
	}

	switch {
	case migrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("goose status: %v", err)
		}
		for _, st := range statuses {
			fmt.Printf("%-6d %-40s %s\n", st.Source.Version, st.Source.Path, st.State)
		}
	case migrateRollback:
		res, err := provider.Down(ctx)
		if err != nil {
			log.Fatalf("goose down: %v", err)
		}
		fmt.Println("rolled back:", res)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatalf("goose up: %v", err)
		}
		for _, res := range results {
			fmt.Println("applied:", res)
		}
	}

	return nil
}

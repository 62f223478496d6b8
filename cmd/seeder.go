package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	employeeDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/workforce-portal/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-portal/internal/employee"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/user"
	"github.com/frahmantamala/workforce-portal/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
	defaultEmployeeID    = "E-001"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default admin account",
	Long:  `Seed the database with the default admin user and its employee record for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		if cfg.Database.Path == "" {
			log.Fatal("database.path is empty; nothing to seed")
		}

		lg := logger.Configure(cmd.OutOrStdout(), cfg.Logging.Level, cfg.Logging.Format)
		cfg.Database.SeedOnEmpty = false

		app, err := NewApplication(ctx, cfg, lg)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer app.Close()

		if clearData {
			if err := clearTables(ctx, app.Store); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		if err := seedDefaults(ctx, app.Users, app.Employees, lg); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		fmt.Println("Seeded admin user:", defaultAdminEmail)
	},
}

// seedDefaults creates the default employee and admin account, skipping
// whichever already exists.
func seedDefaults(ctx context.Context, users *user.Service, employees *employee.Service, lg *slog.Logger) error {
	if _, err := employees.Get(ctx, defaultEmployeeID); errors.Is(err, employee.ErrNotFound) {
		_, err = employees.Create(ctx, employee.CreateEmployeeDTO{
			ID:          defaultEmployeeID,
			Name:        "Administrator",
			Email:       defaultAdminEmail,
			Department:  "Management",
			Designation: "Administrator",
			Status:      employeeDatamodel.StatusActive,
		})
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", defaultEmployeeID, err)
		}
		lg.Info("seeded employee", "employee_id", defaultEmployeeID)
	} else if err != nil {
		return err
	}

	existing, err := users.List(ctx, user.ListFilter{Email: defaultAdminEmail})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lg.Info("admin user already exists", "email", defaultAdminEmail)
		return nil
	}

	employeeID := defaultEmployeeID
	_, err = users.Create(ctx, user.CreateUserDTO{
		Name:       "Administrator",
		Email:      defaultAdminEmail,
		Password:   defaultAdminPassword,
		Role:       userDatamodel.RoleAdmin,
		EmployeeID: &employeeID,
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	lg.Info("seeded admin user", "email", defaultAdminEmail)
	return nil
}

func clearTables(ctx context.Context, s *store.Store) error {
	return s.Mutate(ctx, func(tx *gorm.DB) error {
		for i := len(store.Tables) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + store.Tables[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package main

import (
	"fmt"
	"os"

	"go-echo-starwars/config"
	"go-echo-starwars/internal/admin"
	"go-echo-starwars/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:          "starwars-admin",
	Short:        "Inspect and migrate the Star Wars database",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := open()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		admin.Success(cmd.OutOrStdout(), "migrated %d tables", len(database.Tables))
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:       "browse <table>",
	Short:     "Print the rows of one table",
	Long:      "Print the rows of one table. Favorites show the user email and the names of their targets.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: admin.Tables(),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := open()
		if err != nil {
			return err
		}
		defer database.Close(db)

		view, err := admin.Load(cmd.Context(), db, args[0])
		if err != nil {
			return err
		}
		return admin.Render(cmd.OutOrStdout(), view)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "Database URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(migrateCmd, browseCmd)
}

func open() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	url := cfg.DatabaseURL
	if databaseURL != "" {
		url = databaseURL
	}
	return database.Connect(url, false)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		admin.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

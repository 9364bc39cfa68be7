package commands

import (
	"fmt"
	"log"
	"os"

	"archblog/config"
	"archblog/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "archblog",
	Short: "Architecture blog backend",
	Long: `archblog serves the public blog API, the moderation dashboard API and the
newsletter endpoints.

Running without a subcommand starts the HTTP server.

Examples:
  archblog                                         # same as "archblog serve"
  archblog migrate                                 # create or update tables
  archblog admin create --email a@b.co --password secret123
  archblog cleanup                                 # purge expired verification codes`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
}

func loadEnv() {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file loaded: %v", envFile, err)
	}
}

// openDatabase loads the configuration and connects to the database without
// migrating it.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

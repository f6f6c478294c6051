package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/config"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "helmet-server",
		Short: "Smart safety helmet backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return err
			} else if err != nil && !common.IsProduction() {
				log.Println("No .env file found, reading configuration from the environment")
			}

			var err error
			cfg, err = config.Load()
			if err != nil {
				appErr := common.AsAppError(err)
				return fmt.Errorf("%s: %v", appErr.Message, appErr.Details)
			}
			return nil
		},
	}
)

func main() {
	rootCmd.AddCommand(serveCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

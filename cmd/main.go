package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/cmd/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:   "antrian",
	Short: "Antrian Sehat clinic queue backend",
	Long: `Antrian Sehat clinic queue backend.

Configuration is read from .env in the working directory and from the
environment. Run "antrian serve" to start the HTTP API.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		app.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"chaingate/api/config"
	"chaingate/api/types"
)

var (
	envFile string
	port    string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gateway",
		Short:        "Aggregation gateway over a blockchain data provider",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment")

	root.AddCommand(serveCmd(), configCmd())
	return root
}

// loadConfig merges the env file, if present, and reads the configuration.
func loadConfig() (*types.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		fmt.Fprintln(os.Stderr, "Error loading .env file, falling back to environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Port = port
	}
	return cfg, nil
}

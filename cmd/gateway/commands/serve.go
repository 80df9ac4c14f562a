package commands

import (
	"github.com/spf13/cobra"

	"chaingate/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return api.Run(cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides API_PORT)")
	return cmd
}

package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "port:               %s\n", cfg.Port)
			fmt.Fprintf(out, "upstream:           %s\n", redactURL(cfg.UpstreamURL))
			fmt.Fprintf(out, "nft fallback:       %t (%s, chain %s)\n", cfg.NftFallbackEnabled(), cfg.NftFallbackURL, cfg.NftFallbackChain)
			fmt.Fprintf(out, "eth usd price:      %.2f\n", cfg.EthUSDPrice)
			if cfg.MaxWallets > 0 {
				fmt.Fprintf(out, "max wallets:        %d\n", cfg.MaxWallets)
			} else {
				fmt.Fprintf(out, "max wallets:        unlimited\n")
			}
			fmt.Fprintf(out, "nft paging:         %d x %d, limit %d\n", cfg.NftMaxPages, cfg.NftPageSize, cfg.NftResultLimit)
			fmt.Fprintf(out, "upstream timeout:   %s\n", cfg.UpstreamTimeout)
			fmt.Fprintf(out, "upstream rps:       %g\n", cfg.UpstreamRPS)
			fmt.Fprintf(out, "balance cache:      %t (ttl %s)\n", cfg.RedisURI != "", cfg.CacheTTL)
			return nil
		},
	}
}

// redactURL keeps scheme and host. Provider URLs embed the API token in the path.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}
	if u.Path == "" || u.Path == "/" {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/<redacted>"
}

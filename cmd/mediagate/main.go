package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configFiles []string

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "mediagate",
	Short:   "Signed media access gateway",
	Long: `Mediagate serves stored media objects to holders of HMAC-signed
capability tokens. Each token authorizes exactly one object key; public
media is served aggressively cacheable, private media is never cacheable.

Tokens are minted by the account service with the same shared secret;
this gateway only verifies them.`,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&configFiles, "config", nil,
		"config file path, repeatable (default: ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	mediagate "github.com/cnyakundi/siddessocial-sub002"
	"github.com/cnyakundi/siddessocial-sub002/config"
	"github.com/cnyakundi/siddessocial-sub002/secretsource"
)

var mintCmd = &cobra.Command{
	Use:   "mint <object-key>",
	Short: "Mint a signed media token (development helper)",
	Long: `Mint a token authorizing access to a single object key, in the same
wire format the account service issues. Intended for local development and
smoke testing against a running gateway.`,
	Args: cobra.ExactArgs(1),
	RunE: runMint,
}

func init() {
	mintCmd.Flags().String("mode", "priv", "access mode (pub, priv)")
	mintCmd.Flags().Duration("ttl", time.Hour, "token lifetime (0 for no expiry)")

	rootCmd.AddCommand(mintCmd)
}

func runMint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFiles, nil)
	if err != nil {
		return err
	}

	secret, err := secretsource.Load(cfg.Auth.Secret)
	if err != nil {
		return fmt.Errorf("load secret: %w", err)
	}
	if len(secret) == 0 {
		return errors.New("no token secret configured")
	}

	modeStr, _ := cmd.Flags().GetString("mode")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	claims := mediagate.Claims{
		Key:  args[0],
		Mode: mediagate.ParseMode(modeStr),
	}
	if ttl > 0 {
		claims.ExpiresAt = time.Now().Add(ttl).Unix()
	}

	token, err := mediagate.SignToken(secret, claims)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

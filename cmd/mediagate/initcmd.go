package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a config.yaml",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	const configPath = "config.yaml"

	if _, err := os.Stat(configPath); err == nil {
		prompt := promptui.Prompt{
			Label:     "config.yaml already exists. Overwrite it",
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "5790",
		Validate: func(input string) error {
			p, err := strconv.Atoi(input)
			if err != nil || p < 1 || p > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	backendPrompt := promptui.Select{
		Label: "Storage backend",
		Items: []string{"filesystem", "s3"},
	}
	_, backend, err := backendPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	storage := map[string]any{"backend": backend}
	if backend == "filesystem" {
		pathPrompt := promptui.Prompt{Label: "Storage directory", Default: "./media"}
		path, promptErr := pathPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}
		storage["path"] = path
	} else {
		endpointPrompt := promptui.Prompt{Label: "S3 endpoint", Default: "http://localhost:9000"}
		endpoint, promptErr := endpointPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}

		bucketPrompt := promptui.Prompt{Label: "Bucket"}
		bucket, promptErr := bucketPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}

		accessPrompt := promptui.Prompt{Label: "Access key"}
		accessKey, promptErr := accessPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}

		secretPrompt := promptui.Prompt{Label: "Secret key", Mask: '*'}
		secretKey, promptErr := secretPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}

		storage["s3"] = map[string]any{
			"endpoint":   endpoint,
			"bucket":     bucket,
			"access_key": accessKey,
			"secret_key": secretKey,
		}
	}

	secretFilePrompt := promptui.Prompt{
		Label:   "Token secret file (empty to use MEDIAGATE_AUTH_SECRET env)",
		Default: "",
	}
	secretFile, err := secretFilePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	secret := map[string]any{"env": "MEDIAGATE_AUTH_SECRET"}
	if secretFile != "" {
		secret = map[string]any{"file": secretFile}
	}

	cfg := map[string]any{
		"server":  map[string]any{"port": port},
		"storage": storage,
		"auth":    map[string]any{"secret": secret},
		"log":     map[string]any{"level": "info"},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Println("Wrote config.yaml")
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}

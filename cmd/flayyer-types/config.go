package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/validation"
)

// defaultManifest is where init writes and config reads.
const defaultManifest = "flayyer.config.yaml"

var (
	configFile      string
	configValidate  bool
	configExpandEnv bool
	configJSON      bool
)

// errInvalidManifest is returned by config --validate when issues are found.
var errInvalidManifest = errors.New("deck manifest is not valid")

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print a deck manifest as the publishing tools see it",
	Long: `Loads a deck manifest and passes it through unchanged. With --validate
the publishing checks run as well: engine, access key, deck identifier and
sizes.

Example:
  flayyer-types config --file flayyer.config.yaml --validate`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configFile, "file", "f", defaultManifest, "Deck manifest file or URL")
	configCmd.Flags().BoolVar(&configValidate, "validate", false, "Run the publishing checks")
	configCmd.Flags().BoolVar(&configExpandEnv, "expand-env", false, "Resolve ${VAR} references in the access key")
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Print JSON instead of YAML")
}

func runConfig(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := deck.Load(ctx, newLoader(), sourceFor(configFile))
	if err != nil {
		return err
	}
	if configExpandEnv {
		cfg = deck.ExpandEnv(cfg, nil)
	}
	cfg = deck.Define(cfg)

	if configValidate {
		result := validation.Deck(cfg)
		if !result.Valid {
			for _, issue := range result.Issues {
				logger.Warn("manifest issue", zap.String("field", issue.Field), zap.String("reason", issue.Message))
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", issue.Field, issue.Message)
			}
			return fmt.Errorf("%w: %d issue(s) in %s", errInvalidManifest, len(result.Issues), configFile)
		}
	}

	if configJSON {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}
	raw, err := deck.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(raw)
	return err
}

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-flayyer/internal/prompt"
	"github.com/goliatone/go-flayyer/pkg/deck"
)

var (
	initOut   string
	initForce bool
)

// newDriver is swapped in tests.
var newDriver = func(out io.Writer) prompt.Driver {
	return prompt.NewSurveyDriver(out)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a deck manifest interactively",
	Long: `Asks for the engine, deck identifier, access key and publishing details
and writes flayyer.config.yaml. An existing manifest seeds the answers and is
only replaced with --force.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOut, "out", "o", defaultManifest, "Manifest path to write")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing manifest")
}

func runInit(cmd *cobra.Command, args []string) error {
	var seed deck.Config
	raw, err := os.ReadFile(initOut)
	switch {
	case err == nil:
		if !initForce {
			return fmt.Errorf("%s already exists (use --force to replace it)", initOut)
		}
		if seed, err = deck.Parse(raw); err != nil {
			logger.Warn("ignoring unreadable manifest", zap.String("path", initOut), zap.Error(err))
			seed = deck.Config{}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	cfg, err := prompt.Deck(cmd.Context(), newDriver(cmd.OutOrStdout()), seed)
	if err != nil {
		return err
	}
	out, err := deck.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(initOut, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", initOut, err)
	}
	logger.Info("deck manifest written", zap.String("path", initOut), zap.String("deck", cfg.Deck))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", initOut)
	return nil
}

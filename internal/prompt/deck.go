package prompt

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/sizes"
)

var deckID = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Deck walks the user through a deck manifest. Values in seed are offered as
// defaults.
func Deck(ctx context.Context, driver Driver, seed deck.Config) (deck.Config, error) {
	if driver == nil {
		return deck.Config{}, errors.New("prompt: driver is nil")
	}
	cfg := seed

	engines := deck.Engines()
	engineNames := make([]string, len(engines))
	defaultEngine := 0
	for idx, engine := range engines {
		engineNames[idx] = string(engine)
		if engine == seed.Engine {
			defaultEngine = idx
		}
	}
	choice, err := driver.Select(ctx, SelectConfig{
		Message:      "Template engine",
		Options:      engineNames,
		DefaultIndex: defaultEngine,
	})
	if err != nil {
		return deck.Config{}, err
	}
	if choice < 0 || choice >= len(engines) {
		return deck.Config{}, fmt.Errorf("prompt: engine choice %d out of range", choice)
	}
	cfg.Engine = engines[choice]

	if cfg.Deck, err = driver.Input(ctx, InputConfig{
		Message: "Deck identifier",
		Help:    "lowercase letters, digits and dashes",
		Default: seed.Deck,
		Validator: func(value string) error {
			if !deckID.MatchString(value) {
				return fmt.Errorf("%q must be lowercase and dash-cased", value)
			}
			return nil
		},
	}); err != nil {
		return deck.Config{}, err
	}

	if cfg.Key, err = driver.Password(ctx, InputConfig{
		Message: "Access key",
		Help:    "use ${FLAYYER_KEY} to read it from the environment",
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("access key is required")
			}
			return nil
		},
	}); err != nil {
		return deck.Config{}, err
	}

	if cfg.Name, err = driver.Input(ctx, InputConfig{Message: "Display name", Default: seed.Name}); err != nil {
		return deck.Config{}, err
	}
	if cfg.Description, err = driver.Input(ctx, InputConfig{Message: "Description", Default: seed.Description}); err != nil {
		return deck.Config{}, err
	}

	keywords, err := driver.Input(ctx, InputConfig{
		Message: "Keywords (comma separated)",
		Default: strings.Join(seed.Keywords, ", "),
	})
	if err != nil {
		return deck.Config{}, err
	}
	cfg.Keywords = splitList(keywords)

	options := append(sizes.Names(), sizes.Free)
	var defaults []int
	for idx, option := range options {
		for _, existing := range seed.Sizes {
			if existing == option {
				defaults = append(defaults, idx)
			}
		}
	}
	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Supported sizes",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return deck.Config{}, err
	}
	cfg.Sizes = nil
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			cfg.Sizes = append(cfg.Sizes, options[idx])
		}
	}

	if cfg.Private, err = driver.Confirm(ctx, ConfirmConfig{Message: "Private deck?", Default: seed.Private}); err != nil {
		return deck.Config{}, err
	}
	return deck.Define(cfg), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

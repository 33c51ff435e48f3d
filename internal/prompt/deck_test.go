package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-flayyer/pkg/deck"
)

type scriptedDriver struct {
	inputs    []string
	password  string
	selectIdx int
	multi     []int
	confirm   bool
	asked     []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.inputs) == 0 {
		return "", errors.New("no scripted input")
	}
	value := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (d *scriptedDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if cfg.Validator != nil {
		if err := cfg.Validator(d.password); err != nil {
			return "", err
		}
	}
	return d.password, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.confirm, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.selectIdx, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.multi, nil
}

func TestDeck_BuildsManifest(t *testing.T) {
	driver := &scriptedDriver{
		inputs:    []string{"promo-cards", "Promo", "Cards for promos", "og, social"},
		password:  "${FLAYYER_KEY}",
		selectIdx: 1,
		multi:     []int{1, 5},
		confirm:   true,
	}
	cfg, err := Deck(context.Background(), driver, deck.Config{})
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}
	want := deck.Config{
		Engine:      deck.EngineReactTypeScript,
		Key:         "${FLAYYER_KEY}",
		Deck:        "promo-cards",
		Name:        "Promo",
		Description: "Cards for promos",
		Keywords:    []string{"og", "social"},
		Private:     true,
		Sizes:       []string{"BANNER", "FREE"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if issues := deck.Validate(cfg); len(issues) != 0 {
		t.Fatalf("expected a publishable manifest, got %v", issues)
	}
}

func TestDeck_RejectsBadIdentifier(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"Promo Cards"}, selectIdx: 0}
	if _, err := Deck(context.Background(), driver, deck.Config{}); err == nil {
		t.Fatalf("expected identifier validation error")
	}
}

func TestDeck_PropagatesAbort(t *testing.T) {
	driver := &abortingDriver{scriptedDriver: &scriptedDriver{}}
	if _, err := Deck(context.Background(), driver, deck.Config{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortingDriver struct {
	*scriptedDriver
}

func (d *abortingDriver) Select(context.Context, SelectConfig) (int, error) {
	return 0, ErrAborted
}

func TestSelectHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	if got := indexOf(options, "c"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"c", "a"})); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices(options, []int{1, 9})); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

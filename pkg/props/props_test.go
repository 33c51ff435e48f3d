package props

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/deck"
	"github.com/goliatone/go-flayyer/pkg/schema"
	"github.com/goliatone/go-flayyer/pkg/sizes"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

var articleShape = schema.Object(map[string]schema.Schema{
	"title": schema.String(),
	"count": schema.Number(),
	"items": schema.Array(schema.Object(map[string]schema.Schema{
		"id": schema.Number(),
	}, "id")),
}, "title", "count")

func TestFromQuery_DefaultsToBanner(t *testing.T) {
	p, err := FromQuery(articleShape, url.Values{"title": {"Hello"}})
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	want := Props{
		Variables: variables.Variables{"title": "Hello"},
		Width:     1200,
		Height:    630,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("props mismatch (-want +got):\n%s", diff)
	}
	if _, ok := p.Variables.String("count"); ok {
		t.Fatalf("count must be absent")
	}
}

func TestFromQuery_ReservedKeys(t *testing.T) {
	values := url.Values{
		"title":       {"Hi"},
		"items[0][id]": {"7"},
		"_size":       {"story"},
		"_w":          {"500"},
		"_ua":         {"whatsapp"},
		"_lang":       {"es"},
		"_id":         {"abc"},
		"_tags":       {"a, b", "c"},
	}
	p, err := FromQuery(articleShape, values)
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	want := Props{
		Variables: variables.Variables{
			"title": "Hi",
			"items": []any{map[string]any{"id": "7"}},
		},
		Agent:  agent.Agent{Name: "whatsapp"},
		Lang:   "es",
		Width:  500,
		Height: 1920,
		ID:     "abc",
		Tags:   []string{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("props mismatch (-want +got):\n%s", diff)
	}
	if !p.Agent.Is(agent.WhatsApp) {
		t.Fatalf("expected whatsapp agent")
	}
	if p.Locale() != "es" {
		t.Fatalf("expected locale es, got %q", p.Locale())
	}
}

func TestFromQuery_Errors(t *testing.T) {
	cases := map[string]url.Values{
		"unknown size": {"_size": {"HUGE"}},
		"bad width":    {"_w": {"wide"}},
		"zero height":  {"_h": {"0"}},
	}
	for name, values := range cases {
		if _, err := FromQuery(articleShape, values); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := FromQuery(articleShape, url.Values{"_h": {"-1"}})
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestFromQuery_PartialVariables(t *testing.T) {
	p, err := FromQuery(articleShape, url.Values{"title": {"ok"}, "items[a]": {"x"}})
	var issues variables.Issues
	if !errors.As(err, &issues) {
		t.Fatalf("expected variables.Issues, got %v", err)
	}
	if got := p.Variables.StringOr("", "title"); got != "ok" {
		t.Fatalf("expected partial bag to keep title, got %q", got)
	}
}

func TestFromQuery_FunctionSchemaRejected(t *testing.T) {
	bad := schema.Object(map[string]schema.Schema{"render": schema.Func()})
	_, err := FromQuery(bad, url.Values{})
	if !errors.Is(err, schema.ErrFunctionField) {
		t.Fatalf("expected ErrFunctionField, got %v", err)
	}
}

func TestFromQuery_DefaultVariables(t *testing.T) {
	p, err := FromQuery(schema.Schema{}, url.Values{"anything": {"goes"}}, WithDefaultSize(sizes.MustLookup(sizes.Square)))
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	if got := p.Variables.StringOr("", "anything"); got != "goes" {
		t.Fatalf("expected default bag to accept text keys, got %q", got)
	}
	if !p.Square() {
		t.Fatalf("expected square viewport, got %s", p.Size())
	}
}

func TestToQuery_RoundTrip(t *testing.T) {
	p := Props{
		Variables: variables.Variables{"title": "Hi", "items": []any{map[string]any{"id": "1"}}},
		Agent:     agent.New(agent.Slack),
		Lang:      "en",
		Width:     400,
		Height:    400,
		ID:        "x",
		Tags:      []string{"one", "two"},
	}
	back, err := FromQuery(articleShape, ToQuery(p))
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeckProps(t *testing.T) {
	cfg := deck.Define(deck.Config{Engine: deck.EngineReact, Key: "k", Deck: "d"})
	dp := Props{Width: 1, Height: 1}.WithDeck(cfg)
	if dp.Deck.Deck != "d" || dp.Width != 1 {
		t.Fatalf("unexpected deck props: %#v", dp)
	}
}

// Package agent names the crawlers and link-preview fetchers that request
// rendered images. The list is open: unknown agents are carried as free-form
// names and new ones are added over time.
package agent

import "strings"

// Name identifies a crawler. Comparisons are exact and case-sensitive.
type Name string

const (
	Facebook    Name = "facebook"
	Messenger   Name = "messenger"
	WhatsApp    Name = "whatsapp"
	Instagram   Name = "instagram"
	LinkedIn    Name = "linkedin"
	Pinterest   Name = "pinterest"
	Telegram    Name = "telegram"
	Twitter     Name = "twitter"
	Bing        Name = "bing"
	Reddit      Name = "reddit"
	Google      Name = "google"
	GoogleAds   Name = "google ads"
	AmazonAlexa Name = "amazon alexa"
	Amazon      Name = "amazon"
	Yandex      Name = "yandex"
	Yahoo       Name = "yahoo"
	HubSpot     Name = "hubspot"
	MSN         Name = "msn"
	Zoom        Name = "zoom"
	Slack       Name = "slack"
	Discord     Name = "discord"
	Safari      Name = "safari"
	Flipboard   Name = "flipboard"
	Apple       Name = "apple"
	DuckDuckGo  Name = "duckduckgo"
	Disqus      Name = "disqus"
)

var known = []Name{
	Facebook, Messenger, WhatsApp, Instagram, LinkedIn, Pinterest, Telegram,
	Twitter, Bing, Reddit, Google, GoogleAds, AmazonAlexa, Amazon, Yandex,
	Yahoo, HubSpot, MSN, Zoom, Slack, Discord, Safari, Flipboard, Apple,
	DuckDuckGo, Disqus,
}

var knownSet = func() map[Name]struct{} {
	out := make(map[Name]struct{}, len(known))
	for _, name := range known {
		out[name] = struct{}{}
	}
	return out
}()

// Names returns the recognized agent names in declaration order.
func Names() []Name {
	return append([]Name(nil), known...)
}

// IsKnown reports whether name is one of the recognized constants.
func IsKnown(name string) bool {
	_, ok := knownSet[Name(name)]
	return ok
}

func (n Name) String() string { return string(n) }

// Agent describes the crawler that requested a render. Name is empty when
// the agent could not be identified.
type Agent struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// New returns an agent with the given name.
func New(name Name) Agent {
	return Agent{Name: string(name)}
}

// Is reports whether the agent name equals name exactly.
func (a Agent) Is(name Name) bool {
	return a.Name != "" && a.Name == string(name)
}

// Known reports whether the agent name is a recognized constant.
func (a Agent) Known() bool {
	return IsKnown(a.Name)
}

// Empty reports whether no name is set.
func (a Agent) Empty() bool {
	return strings.TrimSpace(a.Name) == ""
}

package agent

import "strings"

// userAgentTokens maps lower-cased User-Agent fragments to agent names. The
// order matters: more specific fragments come first.
var userAgentTokens = []struct {
	token string
	name  Name
}{
	{"adsbot-google", GoogleAds},
	{"mediapartners-google", GoogleAds},
	{"googlebot", Google},
	{"google-inspectiontool", Google},
	{"facebookexternalhit", Facebook},
	{"facebookcatalog", Facebook},
	{"messengerbot", Messenger},
	{"whatsapp", WhatsApp},
	{"instagram", Instagram},
	{"linkedinbot", LinkedIn},
	{"pinterest", Pinterest},
	{"telegrambot", Telegram},
	{"twitterbot", Twitter},
	{"bingbot", Bing},
	{"bingpreview", Bing},
	{"redditbot", Reddit},
	{"alexa", AmazonAlexa},
	{"amazonbot", Amazon},
	{"yandex", Yandex},
	{"yahoo", Yahoo},
	{"slurp", Yahoo},
	{"hubspot", HubSpot},
	{"msnbot", MSN},
	{"zoom", Zoom},
	{"slackbot", Slack},
	{"slack-imgproxy", Slack},
	{"discordbot", Discord},
	{"flipboard", Flipboard},
	{"applebot", Apple},
	{"duckduckbot", DuckDuckGo},
	{"duckduckgo", DuckDuckGo},
	{"disqus", Disqus},
}

// FromUserAgent identifies well-known crawlers from a User-Agent header.
// Browsers and unknown clients yield the empty agent.
func FromUserAgent(userAgent string) Agent {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return Agent{}
	}
	for _, entry := range userAgentTokens {
		if strings.Contains(ua, entry.token) {
			return New(entry.name)
		}
	}
	return Agent{}
}

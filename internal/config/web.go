package config

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// SlackConfig enables score-change notifications via an incoming webhook.
type SlackConfig struct {
	WebhookURL string
	Channel    string
}

func loadCORS() CORSConfig {
	return CORSConfig{AllowedOrigins: listEnvOrDefault(envCORSOrigins, []string{"*"})}
}

func loadSlack() SlackConfig {
	return SlackConfig{
		WebhookURL: envOrDefault(envSlackWebhook, ""),
		Channel:    envOrDefault(envSlackChannel, ""),
	}
}

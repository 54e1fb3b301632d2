package espn

import "time"

const (
	providerName            = "espn"
	defaultSiteBaseURL      = "https://site.api.espn.com/apis/site/v2/sports"
	defaultStandingsBaseURL = "https://site.api.espn.com/apis/v2/sports"
	defaultHTTPTimeout      = 10 * time.Second
	defaultLimit            = 500
	maxErrorBody            = 512
	racingPath              = "racing/f1"
)

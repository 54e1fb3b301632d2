// Package leagues is the static catalog of leagues and competitions the
// service knows how to fetch.
package leagues

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLeague is returned for keys missing from the catalog.
var ErrUnknownLeague = errors.New("unknown league")

// Kind distinguishes how a league's events are shaped.
type Kind string

const (
	KindTeam   Kind = "team"
	KindSoccer Kind = "soccer"
	KindRacing Kind = "racing"
)

// Upstream provider identifiers.
const (
	ProviderESPN     = "espn"
	ProviderMLBStats = "mlbstats"
)

// League describes one league or competition.
type League struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Sport      string   `json:"sport"`
	Kind       Kind     `json:"kind"`
	Provider   string   `json:"provider"`
	Alternates []string `json:"alternates,omitempty"`
	Cups       []string `json:"cups,omitempty"`
	UEFA       bool     `json:"uefa,omitempty"`
	Cup        bool     `json:"cup,omitempty"`
}

// Path returns the "{sport}/{league}" segment used by ESPN URLs for code.
func (l League) Path(code string) string {
	if code == "" {
		code = l.Key
	}
	return l.Sport + "/" + code
}

// Codes returns the competition codes to try in order: alternates first, then the key.
func (l League) Codes() []string {
	codes := make([]string, 0, len(l.Alternates)+1)
	codes = append(codes, l.Alternates...)
	return append(codes, l.Key)
}

// IsSoccer reports whether level scores mean a draw.
func (l League) IsSoccer() bool { return l.Kind == KindSoccer }

// IsRacing reports whether the league has races instead of games.
func (l League) IsRacing() bool { return l.Kind == KindRacing }

var uefaKeys = []string{"uefa.champions", "uefa.europa", "uefa.europa.conf"}

var catalog = []League{
	{Key: "nfl", Name: "NFL", Sport: "football", Kind: KindTeam, Provider: ProviderESPN},
	{Key: "mlb", Name: "MLB", Sport: "baseball", Kind: KindTeam, Provider: ProviderMLBStats},
	{Key: "nhl", Name: "NHL", Sport: "hockey", Kind: KindTeam, Provider: ProviderESPN},
	{Key: "f1", Name: "Formula 1", Sport: "racing", Kind: KindRacing, Provider: ProviderESPN},

	soccer("eng.1", "Premier League", "eng.fa", "eng.league_cup"),
	soccer("esp.1", "LaLiga", "esp.copa_del_rey"),
	soccer("ger.1", "Bundesliga", "ger.dfb_pokal"),
	soccer("ita.1", "Serie A", "ita.coppa_italia"),
	soccer("fra.1", "Ligue 1", "fra.coupe_de_france"),
	soccer("usa.1", "MLS"),

	cup("eng.fa", "FA Cup"),
	cup("eng.league_cup", "Carabao Cup"),
	cup("esp.copa_del_rey", "Copa del Rey"),
	cup("ger.dfb_pokal", "DFB Pokal"),
	cup("ita.coppa_italia", "Coppa Italia"),
	cup("fra.coupe_de_france", "Coupe de France"),

	uefa("uefa.champions", "UEFA Champions League"),
	uefa("uefa.europa", "UEFA Europa League"),
	uefa("uefa.europa.conf", "UEFA Conference League"),
}

var byKey = func() map[string]League {
	m := make(map[string]League, len(catalog))
	for _, l := range catalog {
		m[l.Key] = l
	}
	return m
}()

func soccer(key, name string, cups ...string) League {
	return League{Key: key, Name: name, Sport: "soccer", Kind: KindSoccer, Provider: ProviderESPN, Cups: cups}
}

func cup(key, name string) League {
	return League{Key: key, Name: name, Sport: "soccer", Kind: KindSoccer, Provider: ProviderESPN, Cup: true}
}

func uefa(key, name string) League {
	return League{
		Key:        key,
		Name:       name,
		Sport:      "soccer",
		Kind:       KindSoccer,
		Provider:   ProviderESPN,
		Alternates: []string{key + "_qual"},
		UEFA:       true,
		Cup:        true,
	}
}

// Lookup returns the league registered under key (case-insensitive).
func Lookup(key string) (League, bool) {
	l, ok := byKey[strings.ToLower(strings.TrimSpace(key))]
	return l, ok
}

// Resolve is Lookup with an ErrUnknownLeague error for missing keys.
func Resolve(key string) (League, error) {
	l, ok := Lookup(key)
	if !ok {
		return League{}, fmt.Errorf("%w: %q", ErrUnknownLeague, key)
	}
	return l, nil
}

// All returns the catalog in display order.
func All() []League {
	out := make([]League, len(catalog))
	copy(out, catalog)
	return out
}

// Competitions returns every competition a team from key could appear in:
// a soccer league expands to itself, its domestic cups and all UEFA
// competitions. Other leagues only return themselves. Unknown keys return nil.
func Competitions(key string) []League {
	l, ok := Lookup(key)
	if !ok {
		return nil
	}
	if !l.IsSoccer() || l.Cup {
		return []League{l}
	}
	out := []League{l}
	for _, c := range l.Cups {
		if cl, ok := byKey[c]; ok {
			out = append(out, cl)
		}
	}
	for _, u := range uefaKeys {
		out = append(out, byKey[u])
	}
	return out
}

// SportFamily groups leagues whose team IDs share a namespace upstream.
func SportFamily(key string) string {
	if l, ok := Lookup(key); ok {
		return l.Sport
	}
	return ""
}

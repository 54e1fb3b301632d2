package favorites

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
)

var (
	// ErrInvalidFavorite wraps validation failures of favorites input.
	ErrInvalidFavorite = errors.New("invalid favorite")
	// ErrFavoriteNotFound is returned when removing a favorite that is not stored.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// Favorite is a starred team.
type Favorite struct {
	League string `json:"league" validate:"required,league"`
	TeamID string `json:"teamId" validate:"required,max=64,teamid"`
	Name   string `json:"name,omitempty" validate:"omitempty,max=128"`
}

// Key identifies a favorite within a store.
func (f Favorite) Key() string {
	return f.League + "/" + f.TeamID
}

// Normalize lower-cases and trims the league and trims the other fields.
func (f Favorite) Normalize() Favorite {
	return Favorite{
		League: strings.ToLower(strings.TrimSpace(f.League)),
		TeamID: strings.TrimSpace(f.TeamID),
		Name:   strings.TrimSpace(f.Name),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("league", func(fl validator.FieldLevel) bool {
		_, ok := leagues.Lookup(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("teamid", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !isIDRune(r) {
				return false
			}
		}
		return true
	})
	return v
}

func isIDRune(r rune) bool {
	return r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Validate normalizes f and checks it against the league catalog.
func Validate(f Favorite) (Favorite, error) {
	f = f.Normalize()
	if err := validate.Struct(f); err != nil {
		return Favorite{}, fmt.Errorf("%w: %v", ErrInvalidFavorite, err)
	}
	return f, nil
}

// ValidateAll validates every favorite and drops duplicates, keeping the last.
func ValidateAll(in []Favorite) ([]Favorite, error) {
	out := make([]Favorite, 0, len(in))
	index := make(map[string]int, len(in))
	for i, f := range in {
		valid, err := Validate(f)
		if err != nil {
			return nil, fmt.Errorf("favorite %d: %w", i, err)
		}
		if j, ok := index[valid.Key()]; ok {
			out[j] = valid
			continue
		}
		index[valid.Key()] = len(out)
		out = append(out, valid)
	}
	return out, nil
}

// Result is one aggregation of favorite teams' games for a day.
type Result struct {
	Date      string         `json:"date"`
	Games     []games.Game   `json:"games"`
	Races     []racing.Event `json:"races"`
	Partial   bool           `json:"partial"`
	Failed    []string       `json:"failed,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// LiveLeagues returns the leagues that have a game in progress.
func (r Result) LiveLeagues() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range r.Games {
		if !g.Status.IsLive() {
			continue
		}
		if _, ok := seen[g.League]; ok {
			continue
		}
		seen[g.League] = struct{}{}
		out = append(out, g.League)
	}
	return out
}

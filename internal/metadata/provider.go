// Package metadata resolves noisy folder names into canonical movie and
// series identities, backed by a metadata provider (TMDB).
package metadata

import "context"

// Result is one ranked search hit. The first result is treated as the
// best match.
type Result struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`
}

// Details is the canonical record for one movie or TV series.
type Details struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	Name         string `json:"name,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`
}

// Provider is the metadata collaborator. Implementations must degrade
// gracefully: a network failure is an error the caller can recover
// from, never a panic or a hang.
type Provider interface {
	SearchMovie(ctx context.Context, title string, year *int) ([]Result, error)
	SearchTV(ctx context.Context, query string) ([]Result, error)
	MovieDetails(ctx context.Context, id int) (*Details, error)
	TVDetails(ctx context.Context, id int) (*Details, error)
}

// yearFromDate parses the leading 4 digits of a release/air date.
func yearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	y := 0
	for _, c := range date[:4] {
		if c < '0' || c > '9' {
			return nil
		}
		y = y*10 + int(c-'0')
	}
	return &y
}

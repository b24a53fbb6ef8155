package metadata

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/lzhang-md/drivetidy/internal/models"
	"github.com/lzhang-md/drivetidy/internal/nameparse"
)

// ErrUnresolved is the soft failure for a movie folder whose name
// yields no usable title. The planner skips the folder and moves on.
var ErrUnresolved = errors.New("title could not be resolved")

// Explicit provider-id override embedded in a folder name:
// {TMDB-12345} or [tmdb-12345], any case.
var explicitIDRx = regexp.MustCompile(`(?i)[{\[]TMDB-(\d+)[}\]]`)

// ExplicitID extracts an inline TMDB id override from a name. Returns
// the id, the matched tag text and whether a tag was present.
func ExplicitID(name string) (id int, tag string, ok bool) {
	m := explicitIDRx.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return id, m[0], true
}

// Resolver combines local name parsing with provider lookups. The
// provider may be nil; resolution then uses local guesses only.
type Resolver struct {
	provider Provider
}

func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// ResolveMovie turns a raw movie folder or file name into canonical
// metadata. An explicit {TMDB-id} tag short-circuits the search; a
// provider failure degrades to the local guess; an empty local title
// returns ErrUnresolved.
func (r *Resolver) ResolveMovie(ctx context.Context, rawName string) (models.MovieMeta, error) {
	if id, _, ok := ExplicitID(rawName); ok {
		return r.movieByID(ctx, rawName, id), nil
	}

	title, year := nameparse.ExtractMovieInfo(rawName)
	if title == "" {
		return models.MovieMeta{}, ErrUnresolved
	}
	meta := models.MovieMeta{Title: title, Year: year}

	if r.provider == nil {
		return meta, nil
	}
	results, err := r.provider.SearchMovie(ctx, title, year)
	if err != nil {
		log.Printf("Resolver: movie search %q failed, keeping local guess: %v", title, err)
		return meta, nil
	}
	if len(results) > 0 {
		best := results[0]
		meta.TMDBID = best.ID
		meta.Title = best.Title
		if y := yearFromDate(best.ReleaseDate); y != nil {
			meta.Year = y
		}
	}
	return meta, nil
}

func (r *Resolver) movieByID(ctx context.Context, rawName string, id int) models.MovieMeta {
	title, year := nameparse.ExtractMovieInfo(explicitIDRx.ReplaceAllString(rawName, ""))
	meta := models.MovieMeta{Title: title, Year: year, TMDBID: id}

	if r.provider == nil {
		return meta
	}
	details, err := r.provider.MovieDetails(ctx, id)
	if err != nil {
		log.Printf("Resolver: movie details %d failed, keeping local name: %v", id, err)
		return meta
	}
	if details.Title != "" {
		meta.Title = details.Title
	}
	if y := yearFromDate(details.ReleaseDate); y != nil {
		meta.Year = y
	}
	return meta
}

// ResolveSeries turns a raw series folder name into canonical metadata.
// Unlike movies this never fails outright: a cleaned local name is
// always a plausible display name.
func (r *Resolver) ResolveSeries(ctx context.Context, rawName string) models.SeriesMeta {
	if id, tag, ok := ExplicitID(rawName); ok {
		return r.seriesByID(ctx, rawName, tag, id)
	}

	query := nameparse.CleanSeriesQuery(rawName)
	meta := models.SeriesMeta{Name: rawName}
	if query != "" {
		meta.Name = query
	}

	if r.provider == nil || query == "" {
		return meta
	}
	results, err := r.provider.SearchTV(ctx, query)
	if err != nil {
		log.Printf("Resolver: tv search %q failed, keeping local guess: %v", query, err)
		return meta
	}
	if len(results) > 0 {
		best := results[0]
		meta.TMDBID = best.ID
		meta.Name = best.Name
		if y := yearFromDate(best.FirstAirDate); y != nil {
			meta.Year = y
		}
	}
	return meta
}

func (r *Resolver) seriesByID(ctx context.Context, rawName, tag string, id int) models.SeriesMeta {
	cleaned := nameparse.CleanSeriesQuery(strings.Replace(rawName, tag, "", 1))
	meta := models.SeriesMeta{Name: cleaned, TMDBID: id}
	if meta.Name == "" {
		meta.Name = rawName
	}

	if r.provider == nil {
		return meta
	}
	details, err := r.provider.TVDetails(ctx, id)
	if err != nil {
		log.Printf("Resolver: tv details %d failed, keeping local name: %v", id, err)
		return meta
	}
	if details.Name != "" {
		meta.Name = details.Name
	}
	if y := yearFromDate(details.FirstAirDate); y != nil {
		meta.Year = y
	}
	return meta
}
